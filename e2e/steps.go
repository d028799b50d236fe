//go:build e2e

package e2e

import (
	"github.com/cucumber/godog"

	"kycscan/e2e/steps/common"
	"kycscan/e2e/steps/document"
	"kycscan/e2e/steps/faceverify"
	"kycscan/e2e/steps/liveness"
)

// RegisterSteps registers all step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	document.RegisterSteps(ctx, tc)
	liveness.RegisterSteps(ctx, tc)
	faceverify.RegisterSteps(ctx, tc)
}

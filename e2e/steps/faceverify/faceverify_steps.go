//go:build e2e

package faceverify

import (
	"context"

	"github.com/cucumber/godog"

	"kycscan/e2e/steps/common"
)

// RegisterSteps registers face verification step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc common.TestContext) {
	steps := &faceverifySteps{tc: tc}

	ctx.Step(`^I verify a selfie against the same document photo$`, steps.verifySame)
	ctx.Step(`^I verify a selfie against a different document photo$`, steps.verifyDifferent)
	ctx.Step(`^I verify a selfie against an idphoto with threshold "([^"]*)"$`, steps.verifyIDPhotoWithThreshold)
	ctx.Step(`^I verify with only a selfie$`, steps.verifySelfieOnly)
}

type faceverifySteps struct {
	tc common.TestContext
}

func (s *faceverifySteps) verifySame(ctx context.Context) error {
	return s.tc.POSTMultipart("/verify", []common.Upload{
		{Field: "selfie", Filename: "selfie.jpg", Data: common.JPEG(3)},
		{Field: "document", Filename: "doc.jpg", Data: common.JPEG(3)},
	}, nil)
}

func (s *faceverifySteps) verifyDifferent(ctx context.Context) error {
	return s.tc.POSTMultipart("/verify", []common.Upload{
		{Field: "selfie", Filename: "selfie.jpg", Data: common.JPEG(3)},
		{Field: "document", Filename: "doc.jpg", Data: common.JPEG(4)},
	}, nil)
}

func (s *faceverifySteps) verifyIDPhotoWithThreshold(ctx context.Context, threshold string) error {
	return s.tc.POSTMultipart("/verify", []common.Upload{
		{Field: "selfie", Filename: "selfie.jpg", Data: common.JPEG(3)},
		{Field: "idphoto", Filename: "id.jpg", Data: common.JPEG(4)},
	}, map[string]string{"threshold": threshold})
}

func (s *faceverifySteps) verifySelfieOnly(ctx context.Context) error {
	return s.tc.POSTMultipart("/verify", []common.Upload{
		{Field: "selfie", Filename: "selfie.jpg", Data: common.JPEG(3)},
	}, nil)
}

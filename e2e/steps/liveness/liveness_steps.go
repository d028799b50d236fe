//go:build e2e

package liveness

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/google/uuid"

	"kycscan/e2e/steps/common"
)

// RegisterSteps registers liveness step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc common.TestContext) {
	steps := &livenessSteps{tc: tc, subject: "e2e-" + uuid.NewString()}

	ctx.Step(`^I send (\d+) moving frames$`, steps.sendMovingFrames)
	ctx.Step(`^I send (\d+) identical frames$`, steps.sendIdenticalFrames)
	ctx.Step(`^I send a frame without a subject$`, steps.sendWithoutSubject)
	ctx.Step(`^I reset my liveness session$`, steps.reset)
	ctx.Step(`^the liveness decision should be (live|not live)$`, steps.decisionShouldBe)
}

type livenessSteps struct {
	tc      common.TestContext
	subject string
}

func (s *livenessSteps) send(seed int) error {
	return s.tc.POSTMultipart("/liveness/frames",
		[]common.Upload{{Field: "frame", Filename: "frame.jpg", Data: common.JPEG(seed)}},
		map[string]string{"subject_id": s.subject},
	)
}

func (s *livenessSteps) sendMovingFrames(ctx context.Context, n int) error {
	for i := range n {
		if err := s.send(i); err != nil {
			return err
		}
	}
	return nil
}

func (s *livenessSteps) sendIdenticalFrames(ctx context.Context, n int) error {
	for range n {
		if err := s.send(0); err != nil {
			return err
		}
	}
	return nil
}

func (s *livenessSteps) sendWithoutSubject(ctx context.Context) error {
	return s.tc.POSTMultipart("/liveness/frames",
		[]common.Upload{{Field: "frame", Filename: "frame.jpg", Data: common.JPEG(0)}},
		nil,
	)
}

func (s *livenessSteps) reset(ctx context.Context) error {
	return s.tc.DELETE("/liveness/sessions/" + s.subject)
}

func (s *livenessSteps) decisionShouldBe(ctx context.Context, decision string) error {
	v, err := s.tc.GetResponseField("live")
	if err != nil {
		return err
	}
	want := decision == "live"
	if live, ok := v.(bool); !ok || live != want {
		return fmt.Errorf("expected live=%v but got %v", want, v)
	}
	return nil
}

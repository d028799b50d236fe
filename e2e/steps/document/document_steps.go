//go:build e2e

package document

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"

	"kycscan/e2e/steps/common"
)

// RegisterSteps registers document extraction step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc common.TestContext) {
	steps := &documentSteps{tc: tc}

	ctx.Step(`^I upload a business card to "([^"]*)"$`, steps.uploadCard)
	ctx.Step(`^I upload a business card to "([^"]*)" with use_api "([^"]*)"$`, steps.uploadCardWithUseAPI)
	ctx.Step(`^I upload (\d+) business cards to the batch endpoint$`, steps.uploadBatch)
	ctx.Step(`^I upload a corrupt image to "([^"]*)"$`, steps.uploadCorrupt)
	ctx.Step(`^I POST to "([^"]*)" without a file$`, steps.postWithoutFile)
	ctx.Step(`^the batch should report (\d+) processed files$`, steps.batchProcessed)
	ctx.Step(`^the KYC data should have every field$`, steps.kycHasEveryField)
}

type documentSteps struct {
	tc common.TestContext
}

func (s *documentSteps) uploadCard(ctx context.Context, path string) error {
	return s.tc.POSTMultipart(path, []common.Upload{{Field: "file", Filename: "card.png", Data: common.PNG(1)}}, nil)
}

func (s *documentSteps) uploadCardWithUseAPI(ctx context.Context, path, useAPI string) error {
	return s.tc.POSTMultipart(path,
		[]common.Upload{{Field: "file", Filename: "card.png", Data: common.PNG(1)}},
		map[string]string{"use_api": useAPI},
	)
}

func (s *documentSteps) uploadBatch(ctx context.Context, n int) error {
	files := make([]common.Upload, 0, n)
	for i := range n {
		files = append(files, common.Upload{
			Field:    "files",
			Filename: "card-" + strconv.Itoa(i) + ".png",
			Data:     common.PNG(i),
		})
	}
	return s.tc.POSTMultipart("/extract-leads/batch", files, nil)
}

func (s *documentSteps) uploadCorrupt(ctx context.Context, path string) error {
	return s.tc.POSTMultipart(path, []common.Upload{{Field: "file", Filename: "broken.png", Data: []byte("not an image")}}, nil)
}

func (s *documentSteps) postWithoutFile(ctx context.Context, path string) error {
	return s.tc.POSTMultipart(path, nil, map[string]string{"use_api": "false"})
}

func (s *documentSteps) batchProcessed(ctx context.Context, expected int) error {
	v, err := s.tc.GetResponseField("processed")
	if err != nil {
		return err
	}
	if n, ok := v.(float64); !ok || int(n) != expected {
		return fmt.Errorf("expected %d processed files but got %v", expected, v)
	}
	return nil
}

func (s *documentSteps) kycHasEveryField(ctx context.Context) error {
	var body struct {
		KYCData map[string]json.RawMessage `json:"kyc_data"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &body); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	for _, key := range []string{"name", "gender", "date_of_birth", "mobile_number", "aadhaar_number", "address", "pan_number"} {
		if _, ok := body.KYCData[key]; !ok {
			return fmt.Errorf("kyc_data is missing %q", key)
		}
	}
	return nil
}

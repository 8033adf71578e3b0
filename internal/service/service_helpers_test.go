package service_test

import (
	"encoding/json"

	"docpilot/internal/config"
	"docpilot/internal/domain"
	"docpilot/internal/port"
	"docpilot/internal/service"
	"docpilot/internal/upstage"
	"docpilot/mocks"
)

func testEncoder() port.RequestEncoder {
	return upstage.NewEncoder(&config.UpstageConfig{
		APIKey:  "up_test_key_123",
		BaseURL: "https://vendor.test/v1",
	})
}

func testFile() *domain.UploadedFile {
	return &domain.UploadedFile{
		Name:        "lease.pdf",
		ContentType: "application/pdf",
		Size:        int64(len(pdfContent())),
		Content:     pdfContent(),
	}
}

func testDeps() (service.ParseModeDeps, *mocks.MockVendorGateway) {
	gw := new(mocks.MockVendorGateway)
	return service.ParseModeDeps{Encoder: testEncoder(), Gateway: gw}, gw
}

// completion wraps content as a chat completion body.
func completion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": content}}},
	})
	return string(b)
}

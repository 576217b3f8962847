package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

var whatsappClient = &http.Client{Timeout: 10 * time.Second}

// SendWhatsAppOTP delivers a one-time code over the configured WhatsApp
// messaging API.
func SendWhatsAppOTP(phone, otp string) error {
	apiURL := os.Getenv("WHATSAPP_API_URL")
	apiToken := os.Getenv("WHATSAPP_API_TOKEN")
	if apiURL == "" || apiToken == "" {
		return fmt.Errorf("whatsapp API not configured")
	}

	payload := map[string]interface{}{
		"to":   phone,
		"type": "template",
		"template": map[string]interface{}{
			"name": "otp_verification",
			"parameters": []map[string]string{
				{"type": "text", "text": otp},
			},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiToken)

	resp, err := whatsappClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach WhatsApp API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp API error (%d): %s", resp.StatusCode, string(body))
	}
	return nil
}

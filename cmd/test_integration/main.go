package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

var baseURL = "http://localhost:8080"

func main() {
	if v := os.Getenv("DOCCHECK_URL"); v != "" {
		baseURL = v
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")
	userID := fmt.Sprintf("smoke-%d", time.Now().Unix())

	fmt.Println("1. Creating batch...")
	var initResp struct {
		BatchID string `json:"batch_id"`
	}
	if !postForm("/init", url.Values{"user_id": {userID}}, &initResp) || initResp.BatchID == "" {
		fail("Create batch")
	}
	fmt.Println("PASSED: Create batch")

	fmt.Println("2. Uploading documents...")
	docs := map[string]string{
		"terms.txt": "Returns are accepted within 30 days. Shipping is free on orders over 50 dollars.",
		"faq.txt":   "Returns are accepted within 60 days. Shipping costs 5 dollars on all orders.",
	}
	for name, text := range docs {
		if !uploadFile(initResp.BatchID, userID, name, text) {
			fail("Upload " + name)
		}
	}
	fmt.Println("PASSED: Upload documents")

	fmt.Println("3. Analyzing...")
	var analyzeResp struct {
		Conflicts []map[string]string `json:"conflicts"`
	}
	if !postForm("/analyze", url.Values{"batch_id": {initResp.BatchID}, "user_id": {userID}}, &analyzeResp) {
		fail("Analyze")
	}
	fmt.Printf("PASSED: Analyze (%d conflicts)\n", len(analyzeResp.Conflicts))

	fmt.Println("4. Generating report...")
	var reportResp struct {
		ReportURL string `json:"report_url"`
	}
	if !postForm("/report", url.Values{"batch_id": {initResp.BatchID}, "user_id": {userID}}, &reportResp) {
		fail("Report")
	}
	resp, err := http.Get(baseURL + reportResp.ReportURL)
	if err != nil || resp.StatusCode != http.StatusOK {
		fail("Download report")
	}
	resp.Body.Close()
	fmt.Println("PASSED: Report")
}

func fail(step string) {
	fmt.Printf("FAILED: %s\n", step)
	os.Exit(1)
}

func postForm(endpoint string, form url.Values, out interface{}) bool {
	req, err := http.NewRequest(http.MethodPost, baseURL+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return send(req, out)
}

func uploadFile(batchID, userID, name, text string) bool {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return false
	}
	io.WriteString(fw, text)
	mw.WriteField("batch_id", batchID)
	mw.WriteField("user_id", userID)
	mw.Close()

	req, err := http.NewRequest(http.MethodPost, baseURL+"/upload", &body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return send(req, nil)
}

func send(req *http.Request, out interface{}) bool {
	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}
	fmt.Printf("Response: %s\n", string(respBody))

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			fmt.Printf("Error decoding response: %v\n", err)
			return false
		}
	}
	return true
}

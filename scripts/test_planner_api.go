package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // analysis can take a while, no timeout
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func step(name string) {
	color.Cyan("\n=== %s ===", name)
}

func check(resp *http.Response, body []byte, err error) map[string]interface{} {
	if err != nil {
		color.Red("request failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode >= 400 {
		color.Yellow("status %d: %s", resp.StatusCode, string(body))
		return nil
	}
	color.Green("status %d", resp.StatusCode)
	var parsed map[string]interface{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &parsed); err == nil {
			prettyPrint(parsed)
		} else {
			fmt.Println(string(body))
		}
	}
	return parsed
}

func main() {
	step("Create Session")
	resp, body, err := sendRequest("POST", "/planner/sessions", map[string]string{"site_name": "Kalaburagi GP-1"})
	session := check(resp, body, err)
	if session == nil {
		os.Exit(1)
	}
	sessionID := session["id"].(string)

	step("Catalog")
	resp, body, err = sendRequest("GET", "/planner/catalog", nil)
	if err != nil {
		color.Red("request failed: %v", err)
		os.Exit(1)
	}
	color.Green("status %d, %d bytes", resp.StatusCode, len(body))

	step("Set Site Name")
	resp, body, err = sendRequest("PUT", "/planner/sessions/"+sessionID+"/site-name", map[string]string{"site_name": "Kalaburagi GP-2"})
	check(resp, body, err)

	step("Run Analysis (no layers bound - model works from reference only or falls back)")
	resp, body, err = sendRequest("POST", "/planner/sessions/"+sessionID+"/analysis", nil)
	check(resp, body, err)

	step("List Works")
	resp, body, err = sendRequest("GET", "/planner/sessions/"+sessionID+"/works", nil)
	if err != nil {
		color.Red("request failed: %v", err)
		os.Exit(1)
	}
	var works []map[string]interface{}
	_ = json.Unmarshal(body, &works)
	color.Green("status %d, %d works", resp.StatusCode, len(works))

	if len(works) > 0 {
		step("Select First Work")
		resp, body, err = sendRequest("PUT", "/planner/sessions/"+sessionID+"/selection", map[string]string{"work_id": works[0]["id"].(string)})
		check(resp, body, err)
	}

	step("Export Report (stub)")
	resp, body, err = sendRequest("POST", "/planner/sessions/"+sessionID+"/report", nil)
	check(resp, body, err)

	color.Cyan("\nDone.")
}

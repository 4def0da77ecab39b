package config

import "testing"

func TestRobotIP(t *testing.T) {
	t.Setenv("NAO_IP", "")
	if ip := RobotIP("10.0.0.5"); ip != "10.0.0.5" {
		t.Errorf("RobotIP default = %q", ip)
	}
	t.Setenv("NAO_IP", "172.18.16.54")
	if ip := RobotIP("10.0.0.5"); ip != "172.18.16.54" {
		t.Errorf("RobotIP = %q", ip)
	}
}

func TestURLs(t *testing.T) {
	if got := BridgeURL("172.18.16.54"); got != "http://172.18.16.54:8070" {
		t.Errorf("BridgeURL = %q", got)
	}
	if got := EventURL("172.18.16.54"); got != "ws://172.18.16.54:8071/ws/events" {
		t.Errorf("EventURL = %q", got)
	}
}

func TestOllamaDefaults(t *testing.T) {
	t.Setenv("OLLAMA_URL", "")
	t.Setenv("OLLAMA_MODEL", "")
	if got := OllamaURL(); got != DefaultOllamaURL {
		t.Errorf("OllamaURL = %q", got)
	}
	if got := OllamaModel(); got != DefaultModel {
		t.Errorf("OllamaModel = %q", got)
	}

	t.Setenv("OLLAMA_MODEL", "llama3")
	if got := OllamaModel(); got != "llama3" {
		t.Errorf("OllamaModel override = %q", got)
	}
}

func TestDataDir(t *testing.T) {
	t.Setenv("DATA_DIR", "")
	if got := DataDir("patient_profiles"); got != "patient_profiles" {
		t.Errorf("DataDir fallback = %q", got)
	}
	t.Setenv("DATA_DIR", "/srv/records")
	if got := DataDir("patient_profiles"); got != "/srv/records" {
		t.Errorf("DataDir = %q", got)
	}
}

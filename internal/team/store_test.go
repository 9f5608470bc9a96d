package team

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := newID()
		if len(id) != 32 {
			t.Fatalf("expected 32-char id, got %d: %q", len(id), id)
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestTeamJSON_HidesPasswordHash(t *testing.T) {
	tm := &Team{
		ID:           "team-1",
		Name:         "Atolye Robotics",
		ContactEmail: "hello@atolye.example",
		PasswordHash: "$2a$10$something",
	}

	data, err := json.Marshal(tm)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "$2a$10$something") {
		t.Error("serialized team must not carry the password hash")
	}
	if !strings.Contains(string(data), "hello@atolye.example") {
		t.Error("owner serialization should carry the contact email")
	}
}

func TestPublicView_DropsContactEmail(t *testing.T) {
	tm := &Team{
		ID:           "team-1",
		Name:         "Atolye Robotics",
		ContactEmail: "hello@atolye.example",
		PasswordHash: "$2a$10$something",
		IsActive:     true,
	}

	data, err := json.Marshal(tm.Public())
	if err != nil {
		t.Fatal(err)
	}

	var view map[string]interface{}
	if err := json.Unmarshal(data, &view); err != nil {
		t.Fatal(err)
	}
	if _, ok := view["contact_email"]; ok {
		t.Error("public view must not carry contact_email")
	}
	if view["team_name"] != "Atolye Robotics" {
		t.Errorf("expected team_name, got %v", view["team_name"])
	}
}

func TestInfo_NarrowProjection(t *testing.T) {
	tm := &Team{
		Name:    "Atolye Robotics",
		LogoURL: "https://cdn.example/logo.png",
		Social:  SocialLinks{Instagram: "atolye"},
	}

	info := tm.Info()
	if info.Name != tm.Name || info.LogoURL != tm.LogoURL || info.Social != tm.Social {
		t.Errorf("Info() projection mismatch: %+v", info)
	}
}

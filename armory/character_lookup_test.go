/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package armory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mwalcott3/guildsched-rosterbot/roster"
)

const charJSON = `{"realm": "Stormrage", "name": "Thorik",
  "class": "Warrior", "activeSpec": "Protection", "level": 80,
  "itemLevel": 612}`

const charHTML = `<html><body>
<div class="char-header">
  <h1>Liora</h1>
  <span class="char-subtitle">Level 80 Holy Priest</span>
</div>
<span class="char-ilvl">Item Level 598</span>
</body></html>`

func testClient() *Client {
	return &Client{
		httpClient30day: http.DefaultClient,
		httpClient1day:  http.DefaultClient,
	}
}

func pointArmoryAt(t *testing.T, srv *httptest.Server) {
	t.Helper()
	orig := armoryBase
	armoryBase = srv.URL
	t.Cleanup(func() { armoryBase = orig })
}

func TestFetchCharacterViaAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/v1/characters/stormrage/thorik" {
				http.NotFound(w, r)
				return
			}
			w.Write([]byte(charJSON))
		}))
	defer srv.Close()
	pointArmoryAt(t, srv)

	char, err := testClient().FetchCharacter(context.Background(),
		"Stormrage", "Thorik")
	if err != nil {
		t.Fatalf("FetchCharacter: %v", err)
	}
	if char.Class != "Warrior" || char.Spec != "Protection" {
		t.Errorf("class/spec = %v/%v; want Warrior/Protection",
			char.Class, char.Spec)
	}
	if char.ItemLevel != 612 {
		t.Errorf("item level = %v; want 612", char.ItemLevel)
	}
	if char.Role() != roster.RoleTank {
		t.Errorf("role = %v; want Tank", char.Role())
	}
}

func TestFetchCharacterFallsBackToWeb(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/character/stormrage/liora" {
				w.Write([]byte(charHTML))
				return
			}
			http.NotFound(w, r)
		}))
	defer srv.Close()
	pointArmoryAt(t, srv)

	char, err := testClient().FetchCharacter(context.Background(),
		"Stormrage", "Liora")
	if err != nil {
		t.Fatalf("FetchCharacter: %v", err)
	}
	if char.Name != "Liora" || char.Level != 80 {
		t.Errorf("name/level = %v/%v; want Liora/80", char.Name, char.Level)
	}
	if char.Spec != "Holy" || char.Class != "Priest" {
		t.Errorf("spec/class = %v/%v; want Holy/Priest", char.Spec, char.Class)
	}
	if char.ItemLevel != 598 {
		t.Errorf("item level = %v; want 598", char.ItemLevel)
	}
	if char.Role() != roster.RoleHealer {
		t.Errorf("role = %v; want Healer", char.Role())
	}
}

func TestParseCharacterMissingName(t *testing.T) {
	_, err := parseCharacter("stormrage", "ghost",
		strings.NewReader("<html><body></body></html>"))
	if err == nil {
		t.Error("expected error for page without a character header")
	}
}

func TestInferRole(t *testing.T) {
	testCases := []struct {
		name  string
		class string
		spec  string
		want  roster.Role
	}{
		{"tank spec", "Warrior", "Protection", roster.RoleTank},
		{"tank spec druid", "Druid", "Guardian", roster.RoleTank},
		{"healer spec", "Priest", "Holy", roster.RoleHealer},
		{"healer spec shaman", "Shaman", "Restoration", roster.RoleHealer},
		{"dps spec", "Warrior", "Fury", roster.RoleDps},
		{"pure dps class no spec", "Mage", "", roster.RoleDps},
		{"flex class no spec", "Paladin", "", roster.RoleNone},
		{"unknown everything", "", "", roster.RoleNone},
		{"case insensitive", "warrior", "PROTECTION", roster.RoleTank},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InferRole(tc.class, tc.spec); got != tc.want {
				t.Errorf("InferRole(%q, %q) = %v; want %v",
					tc.class, tc.spec, got, tc.want)
			}
		})
	}
}

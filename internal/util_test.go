/* Copyright © 2026 Matt Walcott. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"testing"
	"time"
)

func TestParseDateOrZero(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		wantZero bool
		wantErr  bool
		want     time.Time
	}{
		{name: "empty", in: "", wantZero: true},
		{name: "null literal", in: "null", wantZero: true},
		{
			name: "rfc3339",
			in:   "2026-03-14T19:30:00Z",
			want: time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC),
		},
		{
			name: "date only",
			in:   "2026-03-14",
			want: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		{name: "garbage", in: "not a date", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDateOrZero(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseDateOrZero(%q) succeeded; want error", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateOrZero(%q): %v", tc.in, err)
			}
			if tc.wantZero {
				if !got.IsZero() {
					t.Errorf("ParseDateOrZero(%q) = %v; want zero", tc.in, got)
				}
				return
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseDateOrZero(%q) = %v; want %v", tc.in, got,
					tc.want)
			}
		})
	}
}

// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package validation

import (
	"errors"
	"strings"
	"testing"
)

type sampleRequest struct {
	ProductName string   `json:"product_name" validate:"required,notblank,max=20"`
	Keywords    []string `json:"keywords" validate:"required,min=1,max=3,dive,notblank"`
	ActionType  string   `json:"action_type" validate:"omitempty,oneof=view click"`
	ImageURL    string   `json:"image_url" validate:"omitempty,http_url"`
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	req := sampleRequest{ProductName: "Brass Idol", Keywords: []string{"brass"}, ActionType: "view", ImageURL: "https://cdn.example.com/a.jpg"}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("ValidateStruct() = %v", err)
	}
}

func TestValidateStruct_Errors(t *testing.T) {
	tests := []struct {
		name      string
		req       sampleRequest
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name:      "missing name",
			req:       sampleRequest{Keywords: []string{"a"}},
			wantField: "product_name",
			wantTag:   "required",
			wantMsg:   "product_name is required",
		},
		{
			name:      "blank name",
			req:       sampleRequest{ProductName: "   ", Keywords: []string{"a"}},
			wantField: "product_name",
			wantTag:   "notblank",
			wantMsg:   "product_name must not be blank",
		},
		{
			name:      "long name",
			req:       sampleRequest{ProductName: strings.Repeat("x", 21), Keywords: []string{"a"}},
			wantField: "product_name",
			wantTag:   "max",
			wantMsg:   "product_name must have at most 20 characters",
		},
		{
			name:      "empty keywords",
			req:       sampleRequest{ProductName: "x", Keywords: []string{}},
			wantField: "keywords",
			wantTag:   "min",
			wantMsg:   "keywords must have at least 1 items",
		},
		{
			name:      "blank keyword",
			req:       sampleRequest{ProductName: "x", Keywords: []string{"ok", " "}},
			wantField: "keywords[1]",
			wantTag:   "notblank",
			wantMsg:   "keywords[1] must not be blank",
		},
		{
			name:      "bad action",
			req:       sampleRequest{ProductName: "x", Keywords: []string{"a"}, ActionType: "share"},
			wantField: "action_type",
			wantTag:   "oneof",
			wantMsg:   "action_type must be one of: view click",
		},
		{
			name:      "bad url",
			req:       sampleRequest{ProductName: "x", Keywords: []string{"a"}, ImageURL: "not a url"},
			wantField: "image_url",
			wantTag:   "http_url",
			wantMsg:   "image_url must be a valid http(s) URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)

			var ve *RequestValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("ValidateStruct() = %v, want *RequestValidationError", err)
			}
			if len(ve.Fields) != 1 {
				t.Fatalf("got %d field errors, want 1: %v", len(ve.Fields), ve.Fields)
			}
			fe := ve.Fields[0]
			if fe.Field != tt.wantField || fe.Tag != tt.wantTag || fe.Message != tt.wantMsg {
				t.Errorf("field error = %+v, want %s/%s/%q", fe, tt.wantField, tt.wantTag, tt.wantMsg)
			}
		})
	}
}

func TestRequestValidationError_Error(t *testing.T) {
	ve := &RequestValidationError{Fields: []FieldError{{Message: "a is required"}, {Message: "b is required"}}}
	if got := ve.Error(); got != "a is required; b is required" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&RequestValidationError{}).Error(); got != "validation failed" {
		t.Errorf("empty Error() = %q", got)
	}
}

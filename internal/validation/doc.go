// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

// Package validation validates API request bodies with
// go-playground/validator v10.
//
// A single validator is shared process-wide; it caches struct metadata and
// is safe for concurrent use. Errors name fields by their JSON name
// (including slice indexes, e.g. "keywords[2]") and carry a readable
// message per failed rule.
//
// Custom rules:
//   - notblank: the string is not empty after trimming whitespace
//
// Example:
//
//	type analyzeRequest struct {
//	    ProductName string   `json:"product_name" validate:"required,notblank,max=200"`
//	    Keywords    []string `json:"keywords" validate:"required,min=1,max=20,dive,notblank"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    // 400 with err.(*validation.RequestValidationError).Fields
//	}
package validation

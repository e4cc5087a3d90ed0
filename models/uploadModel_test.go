package models_test

import (
	"testing"

	"github.com/kolabix/digidinez-sub000/models"
)

func TestUploadResultSummaryConservation(t *testing.T) {
	result := models.NewUploadResult()
	result.Categories.Created = 2
	result.Categories.Errors = append(result.Categories.Errors, "Category \"Starters\" already exists")
	result.Tags.Updated = 1
	result.MenuItems.Created = 3
	result.MenuItems.Errors = append(result.MenuItems.Errors,
		"Menu Item \"Paneer Tikka\": Category \"Starters\" not found",
		"Menu Item \"Vindaloo\" already exists",
	)

	summary := result.Summary()
	if summary.TotalCreated != 5 {
		t.Fatalf("TotalCreated=%d, want 5", summary.TotalCreated)
	}
	if summary.TotalUpdated != 1 {
		t.Fatalf("TotalUpdated=%d, want 1", summary.TotalUpdated)
	}
	want := len(result.Categories.Errors) + len(result.Tags.Errors) + len(result.MenuItems.Errors)
	if summary.TotalErrors != want {
		t.Fatalf("TotalErrors=%d, want %d", summary.TotalErrors, want)
	}
}

func TestNewUploadResultErrorListsAreNonNil(t *testing.T) {
	result := models.NewUploadResult()
	for _, errs := range [][]string{result.Categories.Errors, result.Tags.Errors, result.MenuItems.Errors} {
		if errs == nil {
			t.Fatal("error lists must serialize as [] rather than null")
		}
	}
}

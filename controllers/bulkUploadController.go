package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	database "github.com/kolabix/digidinez-sub000/config"
	middleware "github.com/kolabix/digidinez-sub000/middlewares"
	"github.com/kolabix/digidinez-sub000/store"
	"github.com/kolabix/digidinez-sub000/upload"
)

var categoryStore = store.NewCategoryStore(database.Client)
var tagStore = store.NewTagStore(database.Client)
var menuItemStore = store.NewMenuItemStore(database.Client)

var menuReconciler = &upload.Reconciler{
	Categories: categoryStore,
	Tags:       tagStore,
	MenuItems:  menuItemStore,
}

// Bulk upload a menu spreadsheet. The file is parsed and validated as a
// whole; after the validation gate passes, records are reconciled one by one
// and per-record failures are reported in the response details rather than as
// an HTTP error.
func BulkUploadMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid multipart form"}`, http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, `{"success": false, "message": "Upload file is required"}`, http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error reading upload"}`, http.StatusInternalServerError)
		return
	}

	updateExisting := false
	switch strings.ToLower(r.FormValue("updateExisting")) {
	case "true", "1", "yes":
		updateExisting = true
	}

	doc, err := upload.Parse(data, header.Filename)
	if err != nil {
		var formatErr *upload.FileFormatError
		if errors.As(err, &formatErr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"message": formatErr.Error(),
			})
			return
		}
		http.Error(w, `{"success": false, "message": "Error parsing upload"}`, http.StatusInternalServerError)
		return
	}

	if validation := upload.Validate(doc); !validation.IsValid {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Upload rejected: the file contains invalid records",
			"errors":  validation.Errors,
		})
		return
	}

	result, err := menuReconciler.Apply(ctx, restaurantId, doc, updateExisting)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error processing upload"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Bulk upload processed",
		"data": map[string]interface{}{
			"summary": result.Summary(),
			"details": result,
		},
	})
}

// Download the menu spreadsheet template seeded from current state
func DownloadMenuTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	restaurantId := middleware.GetRestaurantFromContext(r)

	workbook, err := upload.BuildTemplate(ctx, restaurantId, categoryStore, tagStore, menuItemStore)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error generating template"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="menu_template.xlsx"`)
	if err := workbook.Write(w); err != nil {
		// Headers are already out; nothing sensible left to send.
		return
	}
}

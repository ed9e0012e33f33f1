package dto

import (
	"strings"
	"testing"
	"time"
)

func strPtr(s string) *string       { return &s }
func floatPtr(f float64) *float64   { return &f }
func intPtr(i int) *int             { return &i }
func timePtr(t time.Time) *time.Time { return &t }

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCreateFarmerRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateFarmerRequest
		valid   bool
		message string
	}{
		{
			name:  "minimal valid",
			req:   CreateFarmerRequest{FirstName: "Amina", LastName: "Bello"},
			valid: true,
		},
		{
			name:  "positive farm size",
			req:   CreateFarmerRequest{FirstName: "Amina", LastName: "Bello", FarmSizeHa: floatPtr(2.5)},
			valid: true,
		},
		{
			name:    "zero farm size rejected",
			req:     CreateFarmerRequest{FirstName: "Amina", LastName: "Bello", FarmSizeHa: floatPtr(0)},
			valid:   false,
			message: "Farm size",
		},
		{
			name:    "negative farm size rejected",
			req:     CreateFarmerRequest{FirstName: "Amina", LastName: "Bello", FarmSizeHa: floatPtr(-1)},
			valid:   false,
			message: "Farm size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := tt.req.Validate()
			if valid != tt.valid {
				t.Errorf("Validate() = %v, want %v (message %q)", valid, tt.valid, msg)
			}
			if !tt.valid && !strings.Contains(msg, tt.message) {
				t.Errorf("expected message containing %q, got %q", tt.message, msg)
			}
		})
	}
}

func TestUpdateFarmerRequestRequiresAField(t *testing.T) {
	var req UpdateFarmerRequest
	if valid, msg := req.Validate(); valid {
		t.Error("empty update must be rejected")
	} else if !strings.Contains(msg, "At least one field") {
		t.Errorf("unexpected message: %q", msg)
	}

	req.Phone = strPtr("+2348012345678")
	if valid, msg := req.Validate(); !valid {
		t.Errorf("single-field update must pass, got %q", msg)
	}
}

func TestLivestockRequestsValidate(t *testing.T) {
	t.Run("create with known status", func(t *testing.T) {
		req := CreateLivestockRequest{FarmerID: "f1", TagNumber: "C-001", Type: "cattle", Status: "active"}
		if valid, msg := req.Validate(); !valid {
			t.Errorf("expected valid, got %q", msg)
		}
	})

	t.Run("create with unknown status", func(t *testing.T) {
		req := CreateLivestockRequest{FarmerID: "f1", TagNumber: "C-001", Type: "cattle", Status: "hibernating"}
		if valid, _ := req.Validate(); valid {
			t.Error("unknown status must be rejected")
		}
	})

	t.Run("empty update rejected", func(t *testing.T) {
		var req UpdateLivestockRequest
		if valid, _ := req.Validate(); valid {
			t.Error("empty update must be rejected")
		}
	})

	t.Run("update with unknown status", func(t *testing.T) {
		req := UpdateLivestockRequest{Status: strPtr("hibernating")}
		if valid, _ := req.Validate(); valid {
			t.Error("unknown status must be rejected")
		}
	})
}

func TestBreedingRecordDateOrdering(t *testing.T) {
	breeding := day("2025-03-01")

	tests := []struct {
		name  string
		req   AddBreedingRecordRequest
		valid bool
	}{
		{
			name:  "expected birth after breeding",
			req:   AddBreedingRecordRequest{BreedingDate: breeding, Status: "pregnant", ExpectedBirthDate: timePtr(day("2025-12-01"))},
			valid: true,
		},
		{
			name:  "expected birth before breeding",
			req:   AddBreedingRecordRequest{BreedingDate: breeding, Status: "pregnant", ExpectedBirthDate: timePtr(day("2025-01-01"))},
			valid: false,
		},
		{
			name:  "actual birth before breeding",
			req:   AddBreedingRecordRequest{BreedingDate: breeding, Status: "delivered", ActualBirthDate: timePtr(day("2025-02-01"))},
			valid: false,
		},
		{
			name:  "unknown breeding status",
			req:   AddBreedingRecordRequest{BreedingDate: breeding, Status: "maybe"},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if valid, msg := tt.req.Validate(); valid != tt.valid {
				t.Errorf("Validate() = %v, want %v (message %q)", valid, tt.valid, msg)
			}
		})
	}
}

func TestFeedingRecordQuantity(t *testing.T) {
	req := AddFeedingRecordRequest{Date: day("2025-03-01"), FeedType: "hay", Quantity: 0, Unit: "kg"}
	if valid, _ := req.Validate(); valid {
		t.Error("zero quantity must be rejected")
	}

	req.Quantity = 12.5
	if valid, msg := req.Validate(); !valid {
		t.Errorf("expected valid, got %q", msg)
	}

	upd := UpdateFeedingRecordRequest{Quantity: floatPtr(-1)}
	if valid, _ := upd.Validate(); valid {
		t.Error("negative quantity must be rejected")
	}
}

func TestCreateCropRequestValidate(t *testing.T) {
	planted := day("2025-04-01")

	tests := []struct {
		name  string
		req   CreateCropRequest
		valid bool
	}{
		{
			name:  "valid full cycle",
			req:   CreateCropRequest{FarmerID: "f1", Name: "maize", Status: "growing", PlantingDate: timePtr(planted), ExpectedHarvestDate: timePtr(day("2025-08-01")), AreaHa: floatPtr(1.2)},
			valid: true,
		},
		{
			name:  "unknown status",
			req:   CreateCropRequest{FarmerID: "f1", Name: "maize", Status: "composting"},
			valid: false,
		},
		{
			name:  "zero area",
			req:   CreateCropRequest{FarmerID: "f1", Name: "maize", AreaHa: floatPtr(0)},
			valid: false,
		},
		{
			name:  "zero expected quantity",
			req:   CreateCropRequest{FarmerID: "f1", Name: "maize", ExpectedQuantity: floatPtr(0)},
			valid: false,
		},
		{
			name:  "zero actual quantity allowed",
			req:   CreateCropRequest{FarmerID: "f1", Name: "maize", ActualQuantity: floatPtr(0)},
			valid: true,
		},
		{
			name:  "harvest before planting",
			req:   CreateCropRequest{FarmerID: "f1", Name: "maize", PlantingDate: timePtr(planted), ExpectedHarvestDate: timePtr(day("2025-03-01"))},
			valid: false,
		},
		{
			name:  "actual harvest before planting",
			req:   CreateCropRequest{FarmerID: "f1", Name: "maize", PlantingDate: timePtr(planted), ActualHarvestDate: timePtr(day("2025-03-01"))},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if valid, msg := tt.req.Validate(); valid != tt.valid {
				t.Errorf("Validate() = %v, want %v (message %q)", valid, tt.valid, msg)
			}
		})
	}
}

func TestCreateFinancialServiceRequestValidate(t *testing.T) {
	applied := day("2025-02-01")

	tests := []struct {
		name  string
		req   CreateFinancialServiceRequest
		valid bool
	}{
		{
			name:  "valid loan",
			req:   CreateFinancialServiceRequest{FarmerID: "f1", Type: "loan", Amount: 50000, ApplicationDate: applied, InterestRate: floatPtr(12.5)},
			valid: true,
		},
		{
			name:  "unknown type",
			req:   CreateFinancialServiceRequest{FarmerID: "f1", Type: "mortgage", Amount: 50000, ApplicationDate: applied},
			valid: false,
		},
		{
			name:  "zero amount",
			req:   CreateFinancialServiceRequest{FarmerID: "f1", Type: "grant", Amount: 0, ApplicationDate: applied},
			valid: false,
		},
		{
			name:  "negative interest rate",
			req:   CreateFinancialServiceRequest{FarmerID: "f1", Type: "loan", Amount: 100, ApplicationDate: applied, InterestRate: floatPtr(-1)},
			valid: false,
		},
		{
			name:  "unknown status",
			req:   CreateFinancialServiceRequest{FarmerID: "f1", Type: "loan", Amount: 100, ApplicationDate: applied, Status: "stalled"},
			valid: false,
		},
		{
			name:  "approval before application",
			req:   CreateFinancialServiceRequest{FarmerID: "f1", Type: "loan", Amount: 100, ApplicationDate: applied, ApprovalDate: timePtr(day("2025-01-01"))},
			valid: false,
		},
		{
			name:  "disbursement before application",
			req:   CreateFinancialServiceRequest{FarmerID: "f1", Type: "loan", Amount: 100, ApplicationDate: applied, DisbursementDate: timePtr(day("2025-01-15"))},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if valid, msg := tt.req.Validate(); valid != tt.valid {
				t.Errorf("Validate() = %v, want %v (message %q)", valid, tt.valid, msg)
			}
		})
	}
}

func TestCreateExtensionServiceRequestValidate(t *testing.T) {
	scheduled := day("2025-05-10")

	tests := []struct {
		name  string
		req   CreateExtensionServiceRequest
		valid bool
	}{
		{
			name:  "valid training",
			req:   CreateExtensionServiceRequest{Title: "Pest control workshop", Category: "training", Status: "scheduled", ScheduledDate: timePtr(scheduled), AttendeeCount: intPtr(30)},
			valid: true,
		},
		{
			name:  "unknown category",
			req:   CreateExtensionServiceRequest{Title: "Workshop", Category: "karaoke"},
			valid: false,
		},
		{
			name:  "unknown status",
			req:   CreateExtensionServiceRequest{Title: "Workshop", Category: "training", Status: "abandoned"},
			valid: false,
		},
		{
			name:  "negative attendees",
			req:   CreateExtensionServiceRequest{Title: "Workshop", Category: "training", AttendeeCount: intPtr(-1)},
			valid: false,
		},
		{
			name:  "completed before scheduled",
			req:   CreateExtensionServiceRequest{Title: "Workshop", Category: "training", ScheduledDate: timePtr(scheduled), CompletedDate: timePtr(day("2025-05-01"))},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if valid, msg := tt.req.Validate(); valid != tt.valid {
				t.Errorf("Validate() = %v, want %v (message %q)", valid, tt.valid, msg)
			}
		})
	}
}

func TestUpdateOrganizationRequestValidate(t *testing.T) {
	t.Run("empty update rejected", func(t *testing.T) {
		var req UpdateOrganizationRequest
		if valid, _ := req.Validate(); valid {
			t.Error("empty update must be rejected")
		}
	})

	t.Run("latitude without longitude rejected", func(t *testing.T) {
		req := UpdateOrganizationRequest{Latitude: floatPtr(9.05)}
		if valid, _ := req.Validate(); valid {
			t.Error("latitude alone must be rejected")
		}
	})

	t.Run("coordinate pair accepted", func(t *testing.T) {
		req := UpdateOrganizationRequest{Latitude: floatPtr(9.05), Longitude: floatPtr(7.49)}
		if valid, msg := req.Validate(); !valid {
			t.Errorf("expected valid, got %q", msg)
		}
	})

	t.Run("name only accepted", func(t *testing.T) {
		req := UpdateOrganizationRequest{Name: strPtr("Green Valley Co-op")}
		if valid, msg := req.Validate(); !valid {
			t.Errorf("expected valid, got %q", msg)
		}
	})
}

func TestListQueryDefaults(t *testing.T) {
	var fq ListFarmersQuery
	fq.SetDefaults()
	if fq.Page != 1 || fq.PageSize != 20 {
		t.Errorf("ListFarmersQuery defaults = (%d, %d), want (1, 20)", fq.Page, fq.PageSize)
	}

	lq := ListLivestockQuery{Page: 3, PageSize: 50}
	lq.SetDefaults()
	if lq.Page != 3 || lq.PageSize != 50 {
		t.Errorf("explicit paging must be preserved, got (%d, %d)", lq.Page, lq.PageSize)
	}
}

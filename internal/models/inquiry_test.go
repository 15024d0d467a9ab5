package models

import "testing"

func TestCanTransitionAllToAll(t *testing.T) {
	for _, from := range PipelineStatuses {
		for _, to := range PipelineStatuses {
			if !CanTransition(from, to) {
				t.Errorf("transition %s -> %s should be allowed", from, to)
			}
		}
	}
}

func TestCanTransitionUnknownStage(t *testing.T) {
	if CanTransition(StatusPending, "SHIPPED") {
		t.Error("transition to an unknown stage should be refused")
	}
	if CanTransition("SHIPPED", StatusPending) {
		t.Error("transition from an unknown stage should be refused")
	}
	// Same unknown stage still passes the same-stage rule; the status
	// validity check happens before the table is consulted.
	if !CanTransition("SHIPPED", "SHIPPED") {
		t.Error("same-stage transition is always allowed")
	}
}

func TestInquiryTypeDisplay(t *testing.T) {
	cases := []struct {
		in   InquiryType
		want string
	}{
		{TypeGeneral, "General"},
		{TypePackageBooking, "Package Booking"},
		{TypePlanMyTrip, "Plan My Trip"},
		{TypeAIWizardLead, "Ai Wizard Lead"},
	}
	for _, tc := range cases {
		if got := tc.in.Display(); got != tc.want {
			t.Errorf("Display(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPublicInquiryTypesExcludeWizard(t *testing.T) {
	for _, pt := range PublicInquiryTypes {
		if pt == TypeAIWizardLead {
			t.Fatal("wizard leads must not be accepted on the public form")
		}
	}
	if !TypeAIWizardLead.Valid() {
		t.Fatal("wizard leads are still a valid stored type")
	}
}

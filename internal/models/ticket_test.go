package models

import (
	"testing"
)

func TestTicketIssueRequest_Validate(t *testing.T) {
	valid := TicketArtifact{
		TransactionID: "tx-1",
		OfferingID:    "event-1",
		UserID:        "user-1",
		Quantity:      2,
		Title:         "Gala",
	}

	tests := []struct {
		name    string
		req     TicketIssueRequest
		wantErr string
	}{
		{name: "valid", req: TicketIssueRequest{Recipient: "jane@example.com", Artifact: valid}},
		{name: "recipient optional", req: TicketIssueRequest{Artifact: valid}},
		{
			name:    "bad recipient",
			req:     TicketIssueRequest{Recipient: "jane", Artifact: valid},
			wantErr: "email format is invalid",
		},
		{
			name: "missing transaction",
			req: TicketIssueRequest{Artifact: TicketArtifact{
				OfferingID: "event-1", UserID: "user-1", Quantity: 1,
			}},
			wantErr: "transaction id is required",
		},
		{
			name: "zero quantity",
			req: TicketIssueRequest{Artifact: TicketArtifact{
				TransactionID: "tx-1", OfferingID: "event-1", UserID: "user-1",
			}},
			wantErr: "quantity must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("Expected %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTicket_StatusHelpers(t *testing.T) {
	ticket := &Ticket{UserID: "user-1", Status: TicketValid}

	if !ticket.IsValid() || !ticket.CanBeCancelled() {
		t.Error("Expected a valid ticket to be usable and cancellable")
	}
	if !ticket.IsOwnedBy("user-1") || ticket.IsOwnedBy("user-2") || ticket.IsOwnedBy("") {
		t.Error("IsOwnedBy returned an unexpected result")
	}

	ticket.Status = TicketUsed
	if ticket.IsValid() || ticket.CanBeCancelled() {
		t.Error("Expected a used ticket to be frozen")
	}
}

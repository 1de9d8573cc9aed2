package services

import (
	"context"
	"testing"

	"campus-events/internal/auth"
	"campus-events/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func issueRequest() *models.TicketIssueRequest {
	return &models.TicketIssueRequest{
		Recipient: "Jane@Example.com",
		Artifact: models.TicketArtifact{
			TransactionID: "tx-1",
			OfferingID:    "event-1",
			UserID:        "user-1",
			Quantity:      2,
			Title:         "Spring Gala",
		},
	}
}

func TestTicketService_Issue(t *testing.T) {
	repo := new(MockTicketRepository)
	service := NewTicketService(repo)

	var stored *models.Ticket
	repo.On("GetByTransactionAndOffering", mock.Anything, "tx-1", "event-1").Return(nil, models.ErrTicketNotFound).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Ticket")).Return(nil).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*models.Ticket)
	})

	ticket, created, err := service.Issue(context.Background(), issueRequest())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Same(t, stored, ticket)
	assert.Equal(t, models.TicketValid, ticket.Status)
	assert.Equal(t, "jane@example.com", ticket.Recipient)
	assert.Equal(t, 2, ticket.Quantity)
	assert.Len(t, ticket.Code, 22)
	assert.NotEmpty(t, ticket.ID)

	repo.On("GetByTransactionAndOffering", mock.Anything, "tx-1", "event-1").Return(stored, nil)

	again, created, err := service.Issue(context.Background(), issueRequest())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, ticket.ID, again.ID)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestTicketService_IssueRace(t *testing.T) {
	repo := new(MockTicketRepository)
	service := NewTicketService(repo)
	winner := &models.Ticket{ID: "ticket-1", Status: models.TicketValid}

	repo.On("GetByTransactionAndOffering", mock.Anything, "tx-1", "event-1").Return(nil, models.ErrTicketNotFound).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(models.ErrDuplicateEntry)
	repo.On("GetByTransactionAndOffering", mock.Anything, "tx-1", "event-1").Return(winner, nil)

	ticket, created, err := service.Issue(context.Background(), issueRequest())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "ticket-1", ticket.ID)
}

func TestTicketService_IssueValidation(t *testing.T) {
	service := NewTicketService(new(MockTicketRepository))

	req := issueRequest()
	req.Artifact.Quantity = 0

	_, _, err := service.Issue(context.Background(), req)
	appErr := models.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, models.CodeValidationFailed, appErr.Code)
	assert.Equal(t, "quantity must be at least 1", appErr.Message)
}

func TestTicketService_Validate(t *testing.T) {
	leader := auth.Identity{UserID: "leader-1", Role: models.RoleClubLeader}

	tests := []struct {
		name     string
		identity auth.Identity
		code     string
		ticket   *models.Ticket
		wantErr  error
	}{
		{
			name:     "valid ticket is used",
			identity: leader,
			code:     "code-1",
			ticket:   &models.Ticket{ID: "t1", Status: models.TicketValid},
		},
		{
			name:     "used ticket",
			identity: leader,
			code:     "code-1",
			ticket:   &models.Ticket{ID: "t1", Status: models.TicketUsed},
			wantErr:  models.ErrTicketNotValid,
		},
		{
			name:     "cancelled ticket",
			identity: auth.Identity{UserID: "admin-1", Role: models.RoleAdmin},
			code:     "code-1",
			ticket:   &models.Ticket{ID: "t1", Status: models.TicketCancelled},
			wantErr:  models.ErrTicketNotValid,
		},
		{
			name:     "plain user",
			identity: auth.Identity{UserID: "user-1", Role: models.RoleUser},
			code:     "code-1",
			wantErr:  models.ErrForbidden,
		},
		{
			name:     "unknown code",
			identity: leader,
			code:     "missing",
			wantErr:  models.ErrTicketNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockTicketRepository)
			service := NewTicketService(repo)
			if tt.ticket != nil {
				repo.On("GetByCode", mock.Anything, tt.code).Return(tt.ticket, nil)
			} else {
				repo.On("GetByCode", mock.Anything, tt.code).Return(nil, models.ErrTicketNotFound)
			}
			repo.On("UpdateStatus", mock.Anything, "t1", models.TicketValid, models.TicketUsed).Return(nil)

			ticket, err := service.Validate(context.Background(), tt.identity, tt.code)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.TicketUsed, ticket.Status)
		})
	}
}

func TestTicketService_Cancel(t *testing.T) {
	repo := new(MockTicketRepository)
	service := NewTicketService(repo)
	ctx := context.Background()

	repo.On("GetByID", mock.Anything, "t1").Return(&models.Ticket{ID: "t1", UserID: "user-1", Status: models.TicketValid}, nil)
	repo.On("GetByID", mock.Anything, "t2").Return(&models.Ticket{ID: "t2", UserID: "user-1", Status: models.TicketUsed}, nil)
	repo.On("GetByID", mock.Anything, "t3").Return(&models.Ticket{ID: "t3", UserID: "user-1", Status: models.TicketValid}, nil)
	repo.On("UpdateStatus", mock.Anything, mock.Anything, models.TicketValid, models.TicketCancelled).Return(nil)

	_, err := service.Cancel(ctx, auth.Identity{UserID: "user-2", Role: models.RoleUser}, "t1")
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = service.Cancel(ctx, auth.Identity{UserID: "user-1", Role: models.RoleUser}, "t2")
	assert.ErrorIs(t, err, models.ErrTicketNotValid)

	ticket, err := service.Cancel(ctx, auth.Identity{UserID: "user-1", Role: models.RoleUser}, "t1")
	require.NoError(t, err)
	assert.Equal(t, models.TicketCancelled, ticket.Status)

	ticket, err = service.Cancel(ctx, auth.Identity{UserID: "admin-1", Role: models.RoleAdmin}, "t3")
	require.NoError(t, err)
	assert.Equal(t, models.TicketCancelled, ticket.Status)
}

func TestTicketService_Listing(t *testing.T) {
	repo := new(MockTicketRepository)
	service := NewTicketService(repo)
	ctx := context.Background()

	mine := []*models.Ticket{{ID: "t1", UserID: "user-1"}}
	repo.On("ListByUser", mock.Anything, "user-1").Return(mine, nil)
	repo.On("ListByOffering", mock.Anything, "event-1").Return(mine, nil)

	got, err := service.ListMine(ctx, auth.Identity{UserID: "user-1", Role: models.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, mine, got)

	_, err = service.ListByOffering(ctx, auth.Identity{UserID: "user-1", Role: models.RoleUser}, "event-1")
	assert.ErrorIs(t, err, models.ErrForbidden)

	got, err = service.ListByOffering(ctx, auth.Identity{UserID: "admin-1", Role: models.RoleAdmin}, "event-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

package invoice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/elitekitchen/invoicer/internal/invoice"
	"github.com/elitekitchen/invoicer/internal/money"
)

func validParams() invoice.CreateParams {
	return invoice.CreateParams{
		CustomerName:  "Ada Obi",
		CustomerEmail: "ada@example.com",
		DueDate:       time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Items: []invoice.LineItem{
			{Description: "Jollof rice (pck)", Quantity: 2, UnitPrice: money.FromMajor(2000)},
			{Description: "Egg (pcs)", Quantity: 3, UnitPrice: money.FromMajor(300)},
		},
	}
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name       string
		params     invoice.CreateParams
		setupMock  func(m *invoice.MockRepository)
		wantErr    bool
		wantFields bool
		wantTotal  money.Amount
	}

	tests := []testCase{
		{
			name:   "Success",
			params: validParams(),
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
						// The derived total must be in place before the write.
						assert.Equal(t, money.FromMajor(4900), inv.TotalAmount)
						inv.ID = "abc123"
						inv.CreatedAt = time.Now()
						return nil
					})
			},
			wantTotal: money.FromMajor(4900),
		},
		{
			name: "InvalidEmail",
			params: func() invoice.CreateParams {
				p := validParams()
				p.CustomerEmail = "not-an-email"
				return p
			}(),
			wantErr:    true,
			wantFields: true,
		},
		{
			name: "NoItems",
			params: func() invoice.CreateParams {
				p := validParams()
				p.Items = nil
				return p
			}(),
			wantErr:    true,
			wantFields: true,
		},
		{
			name:   "RepoError",
			params: validParams(),
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					Return(errors.New("backend error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := invoice.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := invoice.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				if tt.wantFields {
					var vErr *invoice.ValidationError
					assert.True(t, errors.As(err, &vErr))
					assert.NotEmpty(t, vErr.Fields)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "abc123", got.ID)
			assert.Equal(t, tt.wantTotal, got.TotalAmount)
		})
	}
}

func TestService_Update_RecomputesTotal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	svc := invoice.NewService(repo)

	inv := &invoice.Invoice{
		ID:            "abc123",
		CustomerName:  "Ada Obi",
		CustomerEmail: "ada@example.com",
		DueDate:       time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Items: []invoice.LineItem{
			{Description: "Fish (pcs)", Quantity: 4, UnitPrice: money.FromMajor(900)},
		},
		// Stale cached total; the service must not trust it.
		TotalAmount: money.FromMajor(1),
	}

	repo.EXPECT().UpdateInvoice(gomock.Any(), inv).Return(nil)

	require.NoError(t, svc.Update(context.Background(), inv))
	assert.Equal(t, money.FromMajor(3600), inv.TotalAmount)
}

func TestService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().GetInvoice(gomock.Any(), "missing").Return(nil, invoice.ErrNotFound)

	svc := invoice.NewService(repo)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, invoice.ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().DeleteInvoice(gomock.Any(), "abc123").Return(nil)

	svc := invoice.NewService(repo)
	assert.NoError(t, svc.Delete(context.Background(), "abc123"))
}

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name    string
		items   []invoice.LineItem
		want    money.Amount
		wantErr bool
	}{
		{
			name: "ScenarioA",
			items: []invoice.LineItem{
				{Description: "Jollof rice (pck)", Quantity: 2, UnitPrice: money.FromMajor(2000)},
				{Description: "Egg (pcs)", Quantity: 3, UnitPrice: money.FromMajor(300)},
			},
			want: money.FromMajor(4900),
		},
		{
			name:  "Empty",
			items: nil,
			want:  0,
		},
		{
			name: "NegativeQuantity",
			items: []invoice.LineItem{
				{Description: "Egg (pcs)", Quantity: -1, UnitPrice: money.FromMajor(300)},
			},
			wantErr: true,
		},
		{
			name: "NegativePrice",
			items: []invoice.LineItem{
				{Description: "Egg (pcs)", Quantity: 1, UnitPrice: -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := invoice.ComputeTotal(tt.items)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

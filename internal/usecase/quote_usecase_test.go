package usecase

import (
	"context"
	"errors"
	"testing"

	"buildquote/internal/domain/entities"
	mock_interfaces "buildquote/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestQuoteUseCase_SubmitQuickQuote(t *testing.T) {
	t.Run("missing required field", func(t *testing.T) {
		uc := NewQuoteUseCase(nil)
		_, err := uc.SubmitQuickQuote(context.Background(), QuickQuoteInput{FirstName: "Ana", Email: "ana@example.com"})
		if !errors.Is(err, ErrInvalidQuoteInput) {
			t.Fatalf("expected ErrInvalidQuoteInput, got %v", err)
		}
	})

	t.Run("create success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo)

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.QuoteRequest{})).DoAndReturn(
			func(_ context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error) {
				if q.ID == "" || q.Source != entities.QuoteSourceQuick {
					t.Fatalf("unexpected quote: %+v", q)
				}
				if q.Status != entities.QuoteStatusPending || q.FinalPaymentStatus != entities.FinalPaymentStatusUnpaid {
					t.Fatalf("unexpected initial state: %+v", q)
				}
				if q.EstimatedPrice != nil {
					t.Fatalf("new quote must not carry a price")
				}
				if q.CreatedAt.IsZero() || !q.CreatedAt.Equal(q.UpdatedAt) {
					t.Fatalf("expected equal timestamps")
				}
				return q, nil
			},
		)

		res, err := uc.SubmitQuickQuote(context.Background(), QuickQuoteInput{
			FirstName:          " Ana ",
			LastName:           "Silva",
			Email:              "ana@example.com",
			Phone:              "555-0100",
			ProjectDescription: "Kitchen remodel",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.FirstName != "Ana" {
			t.Fatalf("expected trimmed first name, got %q", res.FirstName)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.QuoteRequest{}, errors.New("db"))

		_, err := uc.SubmitQuickQuote(context.Background(), QuickQuoteInput{FirstName: "A", LastName: "B", Email: "a@b.c", Phone: "1", ProjectDescription: "d"})
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestQuoteUseCase_SubmitDetailedQuote(t *testing.T) {
	t.Run("missing email", func(t *testing.T) {
		uc := NewQuoteUseCase(nil)
		_, err := uc.SubmitDetailedQuote(context.Background(), DetailedQuoteInput{FirstName: "Ana"})
		if !errors.Is(err, ErrInvalidQuoteInput) {
			t.Fatalf("expected ErrInvalidQuoteInput, got %v", err)
		}
	})

	t.Run("optional fields and file urls", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error) {
				if q.Source != entities.QuoteSourceDetailed {
					t.Fatalf("expected detailed source, got %s", q.Source)
				}
				if len(q.FileURLs) != 1 || q.FileURLs[0] != "https://files.example.com/plan.pdf" {
					t.Fatalf("unexpected file urls: %v", q.FileURLs)
				}
				return q, nil
			},
		)

		_, err := uc.SubmitDetailedQuote(context.Background(), DetailedQuoteInput{
			FirstName: "Ana",
			Email:     "ana@example.com",
			FileURLs:  []string{" ", "https://files.example.com/plan.pdf"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestQuoteUseCase_GetByIDAndList(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewQuoteUseCase(nil)
		_, err := uc.GetByID(context.Background(), " ")
		if !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.QuoteRequest{}, nil)

		_, err := uc.GetByID(context.Background(), "q-1")
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("list invalid status", func(t *testing.T) {
		uc := NewQuoteUseCase(nil)
		_, err := uc.List(context.Background(), "done")
		if !errors.Is(err, ErrInvalidQuoteStatus) {
			t.Fatalf("expected ErrInvalidQuoteStatus, got %v", err)
		}
	})

	t.Run("list by status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo)

		repo.EXPECT().List(gomock.Any(), entities.QuoteStatusReviewed).Return([]entities.QuoteRequest{{ID: "q-1"}}, nil)

		res, err := uc.List(context.Background(), " Reviewed ")
		if err != nil || len(res) != 1 {
			t.Fatalf("unexpected result: %v %v", res, err)
		}
	})
}

func TestQuoteUseCase_Review(t *testing.T) {
	reviewed := entities.QuoteStatusReviewed

	t.Run("empty review", func(t *testing.T) {
		uc := NewQuoteUseCase(nil)
		_, err := uc.Review(context.Background(), "q-1", entities.QuoteReview{})
		if !errors.Is(err, ErrEmptyReview) {
			t.Fatalf("expected ErrEmptyReview, got %v", err)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		bad := entities.QuoteStatus("paid")
		uc := NewQuoteUseCase(nil)
		_, err := uc.Review(context.Background(), "q-1", entities.QuoteReview{Status: &bad})
		if !errors.Is(err, ErrInvalidQuoteStatus) {
			t.Fatalf("expected ErrInvalidQuoteStatus, got %v", err)
		}
	})

	t.Run("invalid price", func(t *testing.T) {
		uc := NewQuoteUseCase(nil)
		for _, p := range []string{"0", "-10", "10.005"} {
			_, err := uc.Review(context.Background(), "q-1", entities.QuoteReview{EstimatedPrice: price(p)})
			if !errors.Is(err, ErrInvalidEstimatedPrice) {
				t.Fatalf("price %s: expected ErrInvalidEstimatedPrice, got %v", p, err)
			}
		}
	})

	t.Run("price change on paid quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.QuoteRequest{ID: "q-1", FinalPaymentStatus: entities.FinalPaymentStatusPaid}, nil)

		_, err := uc.Review(context.Background(), "q-1", entities.QuoteReview{EstimatedPrice: price("500.00")})
		if !errors.Is(err, ErrQuoteAlreadyPaid) {
			t.Fatalf("expected ErrQuoteAlreadyPaid, got %v", err)
		}
	})

	t.Run("status only skips price checks", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo)

		review := entities.QuoteReview{Status: &reviewed}
		repo.EXPECT().UpdateReview(gomock.Any(), "q-1", review).Return(entities.QuoteRequest{ID: "q-1", Status: reviewed}, nil)

		res, err := uc.Review(context.Background(), "q-1", review)
		if err != nil || res.Status != reviewed {
			t.Fatalf("unexpected result: %+v %v", res, err)
		}
	})

	t.Run("condition failed because quote was paid meanwhile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo)

		review := entities.QuoteReview{EstimatedPrice: price("500.00")}
		gomock.InOrder(
			repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.QuoteRequest{ID: "q-1", FinalPaymentStatus: entities.FinalPaymentStatusUnpaid}, nil),
			repo.EXPECT().UpdateReview(gomock.Any(), "q-1", review).Return(entities.QuoteRequest{}, nil),
			repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.QuoteRequest{ID: "q-1", FinalPaymentStatus: entities.FinalPaymentStatusPaid}, nil),
		)

		_, err := uc.Review(context.Background(), "q-1", review)
		if !errors.Is(err, ErrQuoteAlreadyPaid) {
			t.Fatalf("expected ErrQuoteAlreadyPaid, got %v", err)
		}
	})

	t.Run("missing quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo)

		review := entities.QuoteReview{Status: &reviewed}
		repo.EXPECT().UpdateReview(gomock.Any(), "q-1", review).Return(entities.QuoteRequest{}, nil)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.QuoteRequest{}, nil)

		_, err := uc.Review(context.Background(), "q-1", review)
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})
}

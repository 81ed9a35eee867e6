package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"perpus-server/internal/models"
)

// Loan lifecycle engine. Transactions move through exactly two states:
// borrowed, then returned. There is no returned-to-borrowed transition; a
// re-borrow is a brand-new transaction.

// RecordLoan creates one borrowed transaction per selected book, all sharing
// the same loan date, capture time, student and class. Book fields are copied
// by value at this instant. The whole batch is rejected before any mutation
// if the selection is empty, any id does not resolve, kinds are mixed, or a
// general-kind selection holds more than one book.
func (s *DefaultService) RecordLoan(ctx context.Context, req models.RecordLoanRequest) ([]models.Transaction, error) {
	if len(req.BookIDs) == 0 {
		return nil, ErrEmptyBookSelection
	}

	var created []models.Transaction
	loanTime := time.Now().Format("15:04:05")

	err := s.store.Update(ctx, func(state *models.State) error {
		books := make([]models.Book, 0, len(req.BookIDs))
		for _, id := range req.BookIDs {
			book, ok := findBook(state.Books, id)
			if !ok {
				return ErrBookNotFound
			}
			books = append(books, book)
		}

		kind := books[0].Kind
		for _, b := range books[1:] {
			if b.Kind != kind {
				return ErrMixedBookKinds
			}
		}
		if kind == models.BookKindGeneral && len(books) > 1 {
			return ErrGeneralSingleBook
		}

		for _, b := range books {
			created = append(created, models.Transaction{
				ID:         uuid.New().String(),
				LoanDate:   req.LoanDate,
				LoanTime:   loanTime,
				Student:    req.Student,
				Class:      req.Class,
				Book:       b.Title,
				Kind:       b.Kind,
				Author:     b.Author,
				Publisher:  b.Publisher,
				DueDate:    req.DueDate,
				Status:     models.StatusBorrowed,
				ReturnDate: models.ReturnDateNone,
			})
		}
		state.Transactions = append(state.Transactions, created...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("loan recorded",
		zap.String("student", req.Student),
		zap.String("class", req.Class),
		zap.Int("books", len(created)),
	)
	return created, nil
}

// ReturnTransactions transitions every matching borrowed transaction to
// returned with the supplied date. Ids that do not resolve, or resolve to a
// transaction that is already returned, are silently skipped; the result is
// the count actually transitioned. Positions in the collection are kept.
func (s *DefaultService) ReturnTransactions(ctx context.Context, req models.ReturnRequest) (int, error) {
	if len(req.IDs) == 0 {
		return 0, ErrNoReturnIDs
	}

	idSet := make(map[string]bool, len(req.IDs))
	for _, id := range req.IDs {
		idSet[id] = true
	}

	returned := 0
	err := s.store.Update(ctx, func(state *models.State) error {
		for i := range state.Transactions {
			t := &state.Transactions[i]
			if idSet[t.ID] && t.Status == models.StatusBorrowed {
				t.Status = models.StatusReturned
				t.ReturnDate = req.ReturnDate
				returned++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("books returned", zap.Int("count", returned))
	return returned, nil
}

// DeleteTransaction removes the transaction permanently. No tombstone, no
// undo; a missing id is a no-op.
func (s *DefaultService) DeleteTransaction(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(state *models.State) error {
		state.Transactions = deleteByID(state.Transactions, id, func(t models.Transaction) string { return t.ID })
		return nil
	})
}

// ListTransactions returns transactions in insertion order, optionally
// filtered by status and/or student name.
func (s *DefaultService) ListTransactions(status, student string) []models.Transaction {
	all := s.store.Snapshot().Transactions
	if status == "" && student == "" {
		return all
	}

	filtered := make([]models.Transaction, 0, len(all))
	for _, t := range all {
		if status != "" && string(t.Status) != status {
			continue
		}
		if student != "" && t.Student != student {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

func findBook(books []models.Book, id string) (models.Book, bool) {
	for _, b := range books {
		if b.ID == id {
			return b, true
		}
	}
	return models.Book{}, false
}

package http

import (
	"log/slog"
	"net/http"

	"arthika/internal/core"
)

func (s *Server) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.incomes.List(r.Context()))
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var req core.IncomeRecord
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Source = sanitizeInput(req.Source)

	added, err := s.incomes.Add(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	slog.InfoContext(r.Context(), "Income recorded",
		"id", added.ID, "source", added.Source, "amount", added.Amount)
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.incomes.Remove(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.expenses.List(r.Context()))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req core.ExpenseRecord
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = sanitizeInput(req.Name)
	req.Category = sanitizeInput(req.Category)

	added, err := s.expenses.Add(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	slog.InfoContext(r.Context(), "Expense recorded",
		"id", added.ID, "category", added.Category, "amount", added.Amount)
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.expenses.Remove(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.bills.List(r.Context()))
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var req core.BillRecord
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = sanitizeInput(req.Name)
	req.Category = core.NormalizeCategory(req.Category)

	added, err := s.bills.Add(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	slog.InfoContext(r.Context(), "Bill recorded",
		"id", added.ID, "name", added.Name, "due_date", added.DueDate)
	writeJSON(w, http.StatusCreated, added)
}

// handlePatchBill applies single-field edits, the JSON counterpart of
// editing one cell of the bills table.
func (s *Server) handlePatchBill(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	found, err := s.bills.Update(r.Context(), id, func(b *core.BillRecord) {
		b.SetField(req.Field, req.Value)
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "bill not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.bills.Remove(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBillPaid(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.billing.MarkPaid(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !result.Found {
		writeError(w, http.StatusNotFound, "bill not found")
		return
	}

	slog.InfoContext(r.Context(), "Bill paid",
		"id", id, "expense_id", result.Expense.ID, "amount", result.Expense.Amount)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "paid",
		"expense": result.Expense,
	})
}

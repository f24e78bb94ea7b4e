package view

import "github.com/charmbracelet/huh"

// SubmitTransfer fills in amount and marks the transfer form as submitted.
func SubmitTransfer(m TransferModel, amount string) TransferModel {
	m.values.amount = amount
	m.form.State = huh.StateCompleted

	return m
}

// ConfirmDelete accepts an open delete confirmation.
func ConfirmDelete(m ListModel) ListModel {
	m.values.confirm = true
	m.form.State = huh.StateCompleted

	return m
}

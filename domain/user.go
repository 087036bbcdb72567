package domain

import (
	"errors"

	"Moon-Trade-Backend/entities"
)

var (
	MessageSuccessUpsertProfile = "profile saved successfully"
	MessageSuccessGetUserData   = "user data retrieved successfully"
	MessageFailedUpsertProfile  = "failed to save profile"
	MessageFailedGetUserData    = "failed to retrieve user data"

	ErrProfileNotFound = errors.New("profile not found")
	ErrMissingLookup   = errors.New("provide email or id")
)

type (
	UpsertProfileRequest struct {
		ID      string `json:"id" validate:"omitempty,uuid"`
		Email   string `json:"email" validate:"required,email"`
		Name    string `json:"name" validate:"required"`
		IsAdmin bool   `json:"is_admin"`
	}

	UserDataResponse struct {
		Profile      *entities.Profile      `json:"profile"`
		Balances     []BalanceSnapshot      `json:"balances"`
		Transactions []entities.Transaction `json:"transactions"`
	}
)

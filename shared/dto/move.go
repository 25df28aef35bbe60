package dto

type MoveRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

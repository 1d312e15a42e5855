package model

import "time"

// Theatre represents a cinema venue.  A theatre has a fixed number of
// numbered screens (1..TotalScreens); seats and screenings reference a
// theatre together with a screen number rather than a separate screen
// entity.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – venue name.
//  Address      – street address.
//  PhoneNumber  – optional contact phone.
//  Email        – optional contact email.
//  Description  – optional free-form description.
//  TotalScreens – number of screens in the venue; screen numbers are 1-based.
//  ImageURL     – optional photo of the venue.
//  CreatedAt    – timestamp when the row was created.
//  UpdatedAt    – timestamp of last update.
type Theatre struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	PhoneNumber  *string   `json:"phone_number,omitempty"`
	Email        *string   `json:"email,omitempty"`
	Description  *string   `json:"description,omitempty"`
	TotalScreens uint32    `json:"total_screens"`
	ImageURL     *string   `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

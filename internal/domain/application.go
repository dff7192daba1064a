package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "m"
	GenderFemale Gender = "f"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

type BookingApplication struct {
	ID                 int64     `json:"id"`
	PackageID          int64     `json:"package"`
	FullName           string    `json:"full_name"`
	Email              string    `json:"email"`
	NumberOfPassengers int       `json:"number_of_passengers"`
	PhoneNumber        string    `json:"phone_number"`
	DateOfBirth        time.Time `json:"date_of_birth"`
	Gender             Gender    `json:"gender"`
	Nationality        string    `json:"nationality"`
	DateBooked         time.Time `json:"date_booked"`
	IsHidden           bool      `json:"is_hidden"`
}

func (a BookingApplication) Archived() bool { return a.IsHidden }

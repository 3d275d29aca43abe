package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/YC815/Miaoli/pkg/models"
)

var phonePattern = regexp.MustCompile(`^[\d\-\+\(\)\s]+$`)

func IsEmpty(value string) bool {
	return strings.TrimSpace(value) == ""
}

func IsValidNumber(value, min, max int) bool {
	return value >= min && value <= max
}

func IsValidDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

const maxQuantity = 1_000_000

// ValidateItem checks a donation payload. An empty slice means valid.
func ValidateItem(input models.DonationInput) []string {
	var errs []string
	if IsEmpty(input.Name) {
		errs = append(errs, "item name must not be empty")
	}
	if !IsValidNumber(input.Quantity, 1, maxQuantity) {
		errs = append(errs, "quantity must be a positive number")
	}
	if input.ExpiryDate != "" && !IsValidDate(input.ExpiryDate) {
		errs = append(errs, "expiry date is not a valid date")
	}
	return errs
}

func ValidateDonor(donor models.Contact) []string {
	var errs []string
	if IsEmpty(donor.Name) {
		errs = append(errs, "donor name must not be empty")
	}
	if donor.Phone != "" && !IsValidPhone(donor.Phone) {
		errs = append(errs, "donor phone has an invalid format")
	}
	return errs
}

func ValidatePickup(input models.PickupInput) []string {
	var errs []string
	if IsEmpty(input.Name) {
		errs = append(errs, "item name must not be empty")
	}
	if !IsValidNumber(input.Quantity, 1, maxQuantity) {
		errs = append(errs, "pickup quantity must be a positive number")
	}
	if IsEmpty(input.Recipient.Name) {
		errs = append(errs, "recipient unit must not be empty")
	}
	if input.Recipient.Phone != "" && !IsValidPhone(input.Recipient.Phone) {
		errs = append(errs, "recipient phone has an invalid format")
	}
	return errs
}

// ValidateItemsBatch validates every entry, including its donor, and
// prefixes failures with their one-based position so batch callers can
// report per-row errors.
func ValidateItemsBatch(items []models.DonationInput) []string {
	var errs []string
	for idx, item := range items {
		for _, msg := range ValidateItem(item) {
			errs = append(errs, fmt.Sprintf("item %d: %s", idx+1, msg))
		}
		for _, msg := range ValidateDonor(item.Donor) {
			errs = append(errs, fmt.Sprintf("item %d: %s", idx+1, msg))
		}
	}
	return errs
}

func ValidateRecordUpdate(update models.RecordUpdate) []string {
	var errs []string
	if !IsValidNumber(update.Quantity, 1, maxQuantity) {
		errs = append(errs, "quantity must be a positive number")
	}
	if IsEmpty(update.Contact.Name) {
		errs = append(errs, "contact name must not be empty")
	}
	if update.Contact.Phone != "" && !IsValidPhone(update.Contact.Phone) {
		errs = append(errs, "contact phone has an invalid format")
	}
	return errs
}

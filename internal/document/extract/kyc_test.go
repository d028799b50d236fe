package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kycscan/internal/document/models"
)

func TestKYC_AadhaarCard(t *testing.T) {
	text := "GOVERNMENT OF INDIA\nName: Ravi Kumar\nDOB: 15/08/1990\nMale\n1234 5678 9012\nMobile: +91 9876543210"
	got := KYC(text)

	assert.Equal(t, []string{"Ravi", "Kumar"}, got.Name)
	assert.Equal(t, "15/08/1990", models.Deref(got.DateOfBirth))
	assert.Equal(t, "123456789012", models.Deref(got.AadhaarNumber))
	assert.Equal(t, "+91 9876543210", models.Deref(got.MobileNumber))
	assert.Nil(t, got.PANNumber)
}

func TestKYC_PANCard(t *testing.T) {
	got := KYC("INCOME TAX DEPARTMENT\nPermanent Account Number\nABCDE1234F\n1990-08-15")

	assert.Equal(t, "ABCDE1234F", models.Deref(got.PANNumber))
	assert.Equal(t, "1990-08-15", models.Deref(got.DateOfBirth))
	assert.Nil(t, got.AadhaarNumber)
}

func TestKYC_DevanagariLabels(t *testing.T) {
	got := KYC("नाम: Sita Devi\nपता: 12 MG Road, Bengaluru 560001")

	assert.Equal(t, []string{"Sita", "Devi"}, got.Name)
	assert.Equal(t, "12 MG Road, Bengaluru 560001", models.Deref(got.Address))
}

func TestKYC_MobileIgnoresLongerDigitRuns(t *testing.T) {
	got := KYC("987654321012")
	assert.Nil(t, got.MobileNumber)
	assert.Equal(t, "987654321012", models.Deref(got.AadhaarNumber))
}

func TestKYC_EmptyInputIsAllNull(t *testing.T) {
	assert.Equal(t, models.KYCFields{}, KYC(""))
	assert.Equal(t, models.KYCFields{}, KYC("no identity data here"))
}

func TestOCRFields(t *testing.T) {
	text := "STUDENT CARD\nEnrollment No: EN-2024-77\nProgram: Computer Science\nDOB 03.04.2001\nCARD NO AB12345X"
	got := OCRFields(text)

	assert.Equal(t, "03.04.2001", models.Deref(got.DOB))
	assert.Equal(t, "EN-2024-77", models.Deref(got.CustomID))
	assert.Equal(t, "Computer Science", models.Deref(got.Program))
	assert.Equal(t, "EN-2024-77", models.Deref(got.IDNumber))
}

func TestOCRFields_Empty(t *testing.T) {
	assert.Equal(t, models.OCRFields{}, OCRFields(""))
}

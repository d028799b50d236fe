package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadHasContact(t *testing.T) {
	assert.False(t, Lead{}.HasContact())
	assert.False(t, Lead{Company: Ptr("Acme Inc")}.HasContact())
	assert.False(t, Lead{Email: Ptr("")}.HasContact())
	assert.True(t, Lead{Phone: Ptr("(555) 123-4567")}.HasContact())
}

func TestKYCFieldsStableSchema(t *testing.T) {
	raw, err := json.Marshal(KYCFields{})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"name", "gender", "date_of_birth", "mobile_number", "aadhaar_number", "address", "pan_number"} {
		v, ok := decoded[key]
		assert.True(t, ok, "key %s must be present", key)
		assert.Nil(t, v, "key %s must be null", key)
	}
}

func TestPtr(t *testing.T) {
	assert.Nil(t, Ptr(""))
	assert.Equal(t, "x", Deref(Ptr("x")))
	assert.Equal(t, "", Deref(nil))
}

func TestLeadOmitsUnknownFields(t *testing.T) {
	raw, err := json.Marshal(Lead{Name: Ptr("Ann Lee"), Source: LeadSourceLine})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ann Lee","source":"line"}`, string(raw))
}

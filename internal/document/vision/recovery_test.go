package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycscan/internal/document/models"
)

func TestRecoverLeads(t *testing.T) {
	tests := []struct {
		name      string
		reply     string
		wantNames []string
		wantWarn  bool
	}{
		{
			name:      "bare array",
			reply:     `[{"name":"Ann Lee","email":"ann@corp.com"}]`,
			wantNames: []string{"Ann Lee"},
		},
		{
			name:      "array inside prose",
			reply:     "Here are the leads:\n```json\n[{\"name\":\"Ann Lee\"},{\"name\":\"Bo Chen\",\"phone\":\"555\"}]\n```\nLet me know!",
			wantNames: []string{"Ann Lee", "Bo Chen"},
		},
		{
			name:      "entries without contact are dropped",
			reply:     `[{"company":"Acme"},{"email":"x@y.io"}]`,
			wantNames: []string{""},
		},
		{
			name:     "no json at all",
			reply:    "I could not find any leads in this image.",
			wantWarn: true,
		},
		{
			name:     "broken brackets",
			reply:    `[{"name": "Ann"`,
			wantWarn: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leads, warning := RecoverLeads(tt.reply)
			require.NotNil(t, leads)
			if tt.wantWarn {
				assert.NotEmpty(t, warning)
				assert.Empty(t, leads)
				return
			}
			assert.Empty(t, warning)
			require.Len(t, leads, len(tt.wantNames))
			for i, name := range tt.wantNames {
				assert.Equal(t, name, models.Deref(leads[i].Name))
				assert.Equal(t, models.LeadSourceVision, leads[i].Source)
			}
		})
	}
}

func TestRecoverLeads_MapsLooseTypes(t *testing.T) {
	leads, _ := RecoverLeads(`[{"name":"Ann Lee","phone":5551234567,"social_media":{"twitter":"@ann","linkedin":null},"industry":null}]`)
	require.Len(t, leads, 1)

	assert.Equal(t, "5551234567", models.Deref(leads[0].Phone))
	assert.Nil(t, leads[0].Industry)
	assert.Equal(t, map[string]string{"twitter": "@ann"}, leads[0].SocialMedia)
}

func TestRecoverKYC_FencedEqualsBare(t *testing.T) {
	bare := `{"name":["Ravi","Kumar"],"gender":"Male","date_of_birth":"15/08/1990","mobile_number":"9876543210","aadhaar_number":"123456789012","pan_number":null,"address":"12 MG Road"}`

	want, fromText := RecoverKYC(bare)
	require.False(t, fromText)

	for _, wrapped := range []string{
		"```json\n" + bare + "\n```",
		"```\n" + bare + "\n```",
		"  \n" + bare + "\n  ",
	} {
		got, fromText := RecoverKYC(wrapped)
		assert.False(t, fromText)
		assert.Equal(t, want, got)
	}

	assert.Equal(t, []string{"Ravi", "Kumar"}, want.Name)
	assert.Equal(t, "Male", models.Deref(want.Gender))
	assert.Nil(t, want.PANNumber)
}

func TestRecoverKYC_NumericAndStringName(t *testing.T) {
	got, fromText := RecoverKYC(`{"name":"Sita","aadhaar_number":123456789012}`)
	require.False(t, fromText)

	assert.Equal(t, []string{"Sita", ""}, got.Name)
	assert.Equal(t, "123456789012", models.Deref(got.AadhaarNumber))
}

func TestRecoverKYC_TextFallback(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		wantName   []string
		wantDOB    string
		wantGender string
	}{
		{
			name:       "truncated json",
			reply:      `{"name": ["Ravi", "Kumar"], "gender": "Male", "date_of_birth": "15/08/1990", "addr`,
			wantName:   []string{"Ravi", "Kumar"},
			wantDOB:    "15/08/1990",
			wantGender: "Male",
		},
		{
			name:       "prose labels",
			reply:      "The card shows Name: Anita Rao, DOB: 01-02-1985 and Gender: Female.",
			wantName:   []string{"Anita", "Rao"},
			wantDOB:    "01-02-1985",
			wantGender: "Female",
		},
		{
			name:     "lowercase prose after name",
			reply:    "Name: Anita Rao and DOB 01/02/1985",
			wantName: []string{"Anita", "Rao"},
			wantDOB:  "01/02/1985",
		},
		{
			name:     "name stays on its line",
			reply:    "Name: Anita Rao\nDOB: 01/02/1985",
			wantName: []string{"Anita", "Rao"},
			wantDOB:  "01/02/1985",
		},
		{
			name:     "single token name",
			reply:    `{"name": ["Madonna"], oops`,
			wantName: []string{"Madonna", ""},
		},
		{
			name:  "nothing recoverable",
			reply: "Sorry, the image is too blurry.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fromText := RecoverKYC(tt.reply)
			assert.True(t, fromText)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantDOB, models.Deref(got.DateOfBirth))
			assert.Equal(t, tt.wantGender, models.Deref(got.Gender))
			assert.Nil(t, got.AadhaarNumber)
		})
	}
}

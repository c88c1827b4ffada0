package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerBody struct {
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,max=72"`
	Role     string   `json:"role" binding:"required,role"`
	Tonnes   *float64 `json:"tonnes" binding:"required"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	Register(v)
	return v
}

func TestToDetails_ValidationErrors(t *testing.T) {
	v := newValidator()
	zero := 0.0
	long := strings.Repeat("x", 73)
	err := v.Struct(registerBody{Email: "not-an-email", Password: long, Role: "farmer", Tonnes: &zero})
	require.Error(t, err)

	d := ToDetails(err)
	assert.Equal(t, "must be a valid email address", d["email"])
	assert.Equal(t, "must be one of admin, aggregator, buyer", d["role"])
	assert.Equal(t, "must be at most 72 characters", d["password"])
	assert.NotContains(t, d, "tonnes", "zero is a present value")
}

func TestToDetails_Required(t *testing.T) {
	err := newValidator().Struct(registerBody{})
	require.Error(t, err)

	d := ToDetails(err)
	for _, f := range []string{"email", "password", "role", "tonnes"} {
		assert.Equal(t, "is required", d[f], f)
	}
}

func TestRoleValidator_AcceptsKnownRoles(t *testing.T) {
	v := newValidator()
	z := 0.0
	for _, r := range []string{"admin", "Aggregator", " buyer "} {
		assert.NoError(t, v.Struct(registerBody{Email: "a@b.co", Password: "x", Role: r, Tonnes: &z}), r)
	}
}

func TestToDetails_JSONErrors(t *testing.T) {
	var body registerBody
	err := json.Unmarshal([]byte(`{"email":`), &body)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{"tonnes":"many"}`), &body)
	assert.Equal(t, map[string]string{"tonnes": "must be a float64"}, ToDetails(err))
}

func TestToDetails_Nil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}

func TestMaxBytes_CountsEncodedBytes(t *testing.T) {
	type body struct {
		Password string `json:"password" binding:"required,maxbytes=72"`
	}
	v := newValidator()

	assert.NoError(t, v.Struct(body{Password: strings.Repeat("x", 72)}))
	assert.NoError(t, v.Struct(body{Password: strings.Repeat("é", 36)}))

	err := v.Struct(body{Password: strings.Repeat("é", 40)})
	require.Error(t, err)
	assert.Equal(t, "must be at most 72 bytes", ToDetails(err)["password"])
}

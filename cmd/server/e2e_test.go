package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type suavePayContainer struct {
	testcontainers.Container
	URI string
}

func setupSuavePay(ctx context.Context, t *testing.T) (*suavePayContainer, error) {
	natPort := nat.Port("5000/tcp")

	req := testcontainers.ContainerRequest{
		FromDockerfile: testcontainers.FromDockerfile{
			Context:    "../..",
			Dockerfile: "Dockerfile",
		},
		ExposedPorts: []string{string(natPort)},
		Env: map[string]string{
			"PORT":         "5000",
			"GIN_MODE":     "release",
			"DATABASE_URL": "sqlite::memory:",
			"JWT_SECRET":   "test-secret",
			"BCRYPT_COST":  "4",
		},
		WaitingFor: wait.ForHTTP("/healthz").
			WithPort(natPort).
			WithStartupTimeout(120 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})

	var suavePayC *suavePayContainer
	if container != nil {
		suavePayC = &suavePayContainer{Container: container}
	}
	if err != nil {
		return suavePayC, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return suavePayC, err
	}

	mappedPort, err := container.MappedPort(ctx, natPort)
	if err != nil {
		return suavePayC, err
	}

	suavePayC.URI = fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
	return suavePayC, nil
}

func postJSON(t *testing.T, url, token, body string) (int, map[string]interface{}) {
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &result), string(data))
	return resp.StatusCode, result
}

func TestE2E_PaymentFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping E2E test")
	}

	ctx := context.Background()
	suavePayC, err := setupSuavePay(ctx, t)
	testcontainers.CleanupContainer(t, suavePayC)
	require.NoError(t, err)

	register := `{"email": "a@x.com", "password": "p1", "walletAddress": "0xA"}`

	status, result := postJSON(t, suavePayC.URI+"/api/auth/register", "", register)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "User registered", result["message"])

	status, result = postJSON(t, suavePayC.URI+"/api/auth/register", "", register)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Wallet address already registered", result["message"])

	status, result = postJSON(t, suavePayC.URI+"/api/auth/login", "", `{"walletAddress": "0xA", "password": "p1"}`)
	require.Equal(t, http.StatusOK, status)
	token, ok := result["token"].(string)
	require.True(t, ok, "token should be a string")

	status, result = postJSON(t, suavePayC.URI+"/api/payment/pay", token, `{
		"amount": 10,
		"senderWalletAddress": "0xA",
		"receiverWalletAddress": "0xB",
		"senderEmail": "a@x.com",
		"receiverEmail": "b@x.com"
	}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Payment processed", result["message"])

	req, err := http.NewRequest(http.MethodGet, suavePayC.URI+"/api/payment/transactions/0xA", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var transactions []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&transactions))
	require.Len(t, transactions, 1)
	assert.Equal(t, 10.0, transactions[0]["amount"])
	assert.Equal(t, "0xB", transactions[0]["receiverWalletAddress"])
}

func TestE2E_ProtectedWithoutToken(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping E2E test")
	}

	ctx := context.Background()
	suavePayC, err := setupSuavePay(ctx, t)
	testcontainers.CleanupContainer(t, suavePayC)
	require.NoError(t, err)

	resp, err := http.Get(suavePayC.URI + "/api/payment/transactions/0xA")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

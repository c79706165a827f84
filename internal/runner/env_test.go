package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opennext-tools/nextdeploy-cli/internal/link"
)

func TestMergeLaterWins(t *testing.T) {
	got := Merge(
		map[string]string{"A": "base", "B": "base"},
		map[string]string{"B": "override", "C": "mid"},
		map[string]string{"C": "last"},
	)
	assert.Equal(t, map[string]string{"A": "base", "B": "override", "C": "last"}, got)
}

func TestCredentialEnv(t *testing.T) {
	session := map[string]string{
		"SST_AWS_ACCESS_KEY_ID":     "AKIA123",
		"SST_AWS_SECRET_ACCESS_KEY": "secret",
		"SST_AWS_REGION":            "eu-west-1",
		// session token deliberately unset
	}
	got := CredentialEnv(func(k string) string { return session[k] })

	assert.Equal(t, map[string]string{
		"AWS_ACCESS_KEY_ID":     "AKIA123",
		"AWS_SECRET_ACCESS_KEY": "secret",
		"AWS_REGION":            "eu-west-1",
	}, got)
}

func TestLinkEnv(t *testing.T) {
	resolver := link.StaticResolver{
		"MyBucket": {"name": "my-bucket-x1y2"},
		"MyQueue":  {"url": "https://sqs/queue"},
	}

	env, err := LinkEnv(context.Background(), resolver, []string{"MyBucket", "MyQueue"}, App{Name: "shop", Stage: "prod"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"name":"shop","stage":"prod"}`, env["SST_RESOURCE_App"])
	assert.JSONEq(t, `{"name":"my-bucket-x1y2"}`, env["SST_RESOURCE_MyBucket"])
	assert.JSONEq(t, `{"url":"https://sqs/queue"}`, env["SST_RESOURCE_MyQueue"])
	assert.Len(t, env, 3)
}

func TestLinkEnvUnknownRef(t *testing.T) {
	_, err := LinkEnv(context.Background(), link.StaticResolver{}, []string{"Nope"}, App{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Nope"`)
}

func TestFlattenSortsPairs(t *testing.T) {
	got := flatten(map[string]string{"B": "2", "A": "1"})
	assert.Equal(t, []string{"A=1", "B=2"}, got)
}

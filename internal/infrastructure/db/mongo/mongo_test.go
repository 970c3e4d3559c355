package mongo

import (
	"testing"
	"time"
)

func TestClientOptions_Defaults(t *testing.T) {
	opts := ClientOptions(Config{URI: "mongodb://localhost:27017"})

	if opts.ConnectTimeout == nil || *opts.ConnectTimeout != defaultConnectTimeout {
		t.Fatalf("expected default connect timeout, got %v", opts.ConnectTimeout)
	}
	if opts.ServerSelectionTimeout == nil || *opts.ServerSelectionTimeout != defaultConnectTimeout {
		t.Fatalf("expected default selection timeout, got %v", opts.ServerSelectionTimeout)
	}
	if opts.AppName != nil {
		t.Fatalf("unexpected app name %q", *opts.AppName)
	}
}

func TestClientOptions_FromConfig(t *testing.T) {
	opts := ClientOptions(Config{
		URI:            "mongodb://localhost:27017",
		AppName:        "rushhour-api",
		ConnectTimeout: 3 * time.Second,
	})

	if opts.AppName == nil || *opts.AppName != "rushhour-api" {
		t.Fatalf("app name not applied: %v", opts.AppName)
	}
	if *opts.ConnectTimeout != 3*time.Second || *opts.ServerSelectionTimeout != 3*time.Second {
		t.Fatalf("timeouts not applied: %s %s", *opts.ConnectTimeout, *opts.ServerSelectionTimeout)
	}
}

package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	t.Setenv("FIGMA_API_KEY", "figd_test_token")
	t.Setenv("SECURE_TRANSPORT_KEY", "st_test_key")

	Convey("Given configuration from the environment", t, func() {
		Convey("It should default to the stdio transport with the port sentinel", func() {
			cfg := Load()
			So(cfg.Figma.APIKey, ShouldEqual, "figd_test_token")
			So(cfg.SecureTransport.Key, ShouldEqual, "st_test_key")
			So(cfg.Server.Transport, ShouldEqual, TransportStdio)
			So(cfg.Server.Port, ShouldEqual, PortUnused)
		})

		Convey("It should keep the default port for network transports", func() {
			t.Setenv("TRANSPORT", "sse")
			cfg := Load()
			So(cfg.Server.Transport, ShouldEqual, TransportSSE)
			So(cfg.Server.Port, ShouldEqual, DefaultPort)
		})

		Convey("It should honor an explicit port for network transports", func() {
			t.Setenv("TRANSPORT", "sse")
			t.Setenv("PORT", "8080")
			cfg := Load()
			So(cfg.Server.Port, ShouldEqual, 8080)
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given a loaded configuration", t, func() {
		Convey("It should fail when the Figma API key is missing", func() {
			t.Setenv("FIGMA_API_KEY", "")
			t.Setenv("SECURE_TRANSPORT_KEY", "st_test_key")
			cfg := Load()
			err := cfg.Validate()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "FIGMA_API_KEY")
		})

		Convey("It should fail when the secure transport key is missing", func() {
			t.Setenv("FIGMA_API_KEY", "figd_test_token")
			t.Setenv("SECURE_TRANSPORT_KEY", "")
			cfg := Load()
			err := cfg.Validate()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "SECURE_TRANSPORT_KEY")
		})

		Convey("It should fail on an unknown transport", func() {
			t.Setenv("FIGMA_API_KEY", "figd_test_token")
			t.Setenv("SECURE_TRANSPORT_KEY", "st_test_key")
			t.Setenv("TRANSPORT", "carrier-pigeon")
			cfg := Load()
			err := cfg.Validate()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown transport")
		})

		Convey("It should pass with both credentials and the stdio transport", func() {
			t.Setenv("FIGMA_API_KEY", "figd_test_token")
			t.Setenv("SECURE_TRANSPORT_KEY", "st_test_key")
			t.Setenv("TRANSPORT", "stdio")
			cfg := Load()
			So(cfg.Validate(), ShouldBeNil)
		})
	})
}

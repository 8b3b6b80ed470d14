package figma

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/pixelmachine/mcp-server-figma-bridge/core"
)

func TestArgumentValidation(t *testing.T) {
	Convey("Given the argument validators", t, func() {
		Convey("normalizeNodeID should canonicalize the URL form", func() {
			nodeID, err := normalizeNodeID("1-2")
			So(err, ShouldBeNil)
			So(nodeID, ShouldEqual, "1:2")
		})

		Convey("normalizeNodeID should flag malformed ids as invalid parameters", func() {
			_, err := normalizeNodeID("garbage")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, core.ErrInvalidParams), ShouldBeTrue)
		})

		Convey("resolveFileKey should reject an empty key as invalid parameters", func() {
			_, err := resolveFileKey("")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, core.ErrInvalidParams), ShouldBeTrue)
		})

		Convey("resolveFileKey should extract the key from a Figma URL", func() {
			key, err := resolveFileKey("https://www.figma.com/design/abc123/My-File")
			So(err, ShouldBeNil)
			So(key, ShouldEqual, "abc123")
		})
	})
}

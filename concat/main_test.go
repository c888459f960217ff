package concat

import (
	"testing"

	"go.uber.org/goleak"

	// register the in-memory source type with the default registry
	_ "github.com/kkarthikpsgtech/beam/datasource/memory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

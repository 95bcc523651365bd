package graph

import (
	"fmt"
	"log/slog"

	"pingsocial/internal/testutil"
)

// errTest is a sentinel error for test scenarios.
var errTest = fmt.Errorf("test error")

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

type mockUserRepo = testutil.MockUserRepo
type mockFollowRepo = testutil.MockFollowRepo
type mockTribeRepo = testutil.MockTribeRepo
type mockAuditRepo = testutil.MockAuditRepo

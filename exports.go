package walletledger

import "github.com/xraph/walletledger/types"

// Re-export common types for convenience so users don't have to import types package.

// Credits is re-exported from types package.
type Credits = types.Credits

// Entity is re-exported from types package.
type Entity = types.Entity

// Re-export Credits helpers
var Sum = types.Sum

// Re-export Entity constructor
var NewEntity = types.NewEntity

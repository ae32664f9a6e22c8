package cli

import (
	_ "github.com/tcfw/didres/internal/storage"
	_ "github.com/tcfw/didres/pkg/ledger/fabric"
	_ "github.com/tcfw/didres/pkg/ledger/memory"
	_ "github.com/tcfw/didres/pkg/ledger/remote"
)

package cli

func regCommands() {
	//Resolve
	resolveCmd.AddCommand(resolve_didCmd)
	resolveCmd.AddCommand(resolve_vcCmd)

	//Ledger
	ledgerCmd.AddCommand(ledger_importCmd)
	ledgerCmd.AddCommand(ledger_driversCmd)
	ledgerCmd.AddCommand(ledger_historyCmd)

	//Root
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(ledgerCmd)
}

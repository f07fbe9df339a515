package ledger

var ScanTimestamp = scanTimestamp

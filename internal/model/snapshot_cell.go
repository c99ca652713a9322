package model

// SnapshotCell is one cell of a table archived to Parquet in long form.
// The header row is stored with Row == -1 and Value holding the column name.
type SnapshotCell struct {
	Row      int64   `parquet:"row"`
	Position int32   `parquet:"position"`
	Column   string  `parquet:"column"`
	Value    *string `parquet:"value,optional"`
}

// SnapshotColumns lists the Parquet fields a snapshot must carry.
func SnapshotColumns() []string {
	return []string{"row", "position", "column", "value"}
}

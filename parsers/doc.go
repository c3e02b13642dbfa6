// Package parsers reads CSV files for conversion.
//
// A conversion makes two independent passes over the same file. The first
// pass only counts data rows, which decides whether the output is a single
// object or an array. The second pass reads the header row and then yields
// the data rows one at a time:
//
//	count, err := parsers.CountRecords("data.csv")
//	if err != nil {
//	    return err
//	}
//
//	reader, err := parsers.Open("data.csv")
//	if err != nil {
//	    return err
//	}
//	defer reader.Close()
//
//	for {
//	    row, err := reader.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err // the first bad row aborts the run
//	    }
//	    fmt.Println(reader.Headers()[0], row[0])
//	}
//
// Rows may hold fewer or more fields than the header; mapping them is left
// to the caller. Quoting follows encoding/csv: double-quoted fields may
// contain commas and newlines, and "" is an escaped quote.
package parsers

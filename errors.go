package main

import "fmt"

const (
	GenericError  = iota + 100 // generic server error
	DatabaseError              // 101 database error
	BadRequest                 // 102 bad request
	JsonMarshal                // 103 json.Marshal error
	ModelError                 // 104 model artifact error
	FileIOError                // 105 file IO error
	InsertError                // 106 insert error
)

// helper function to return human error message for given server error code
func errorMessage(code int) string {
	if code == 0 {
		return ""
	} else if code == 101 {
		return "database error"
	} else if code == 102 {
		return "bad request"
	} else if code == 103 {
		return "JSON marshal error"
	} else if code == 104 {
		return "model artifact error"
	} else if code == 105 {
		return "file IO error"
	} else if code == 106 {
		return "insert error"
	} else {
		return fmt.Sprintf("Not Implemented error for code %d", code)
	}
}

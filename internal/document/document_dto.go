package document

import "time"

type DocumentResponse struct {
	ID           int64  `json:"id"`
	EmployeeID   int64  `json:"employeeId"`
	FileName     string `json:"fileName"`
	FileType     string `json:"fileType"`
	FileCategory string `json:"fileCategory"`
	UploadedAt   string `json:"uploadedAt"`
}

func mapToResponse(d EmployeeDocument) DocumentResponse {
	return DocumentResponse{
		ID:           d.ID,
		EmployeeID:   d.EmployeeID,
		FileName:     d.FileName,
		FileType:     d.FileType,
		FileCategory: d.FileCategory,
		UploadedAt:   d.UploadedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(docs []EmployeeDocument) []DocumentResponse {
	res := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		res[i] = mapToResponse(d)
	}
	return res
}

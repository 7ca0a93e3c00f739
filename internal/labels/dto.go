package labels

import "time"

const serviceName = "Grocy Thermal Label Server"

// ===== Responses =====

// StatusResponse: GET /
type StatusResponse struct {
	Status  string `json:"status"`
	Printer string `json:"printer"`
	Service string `json:"service"`
}

// HistoryResponse: GET /history
type HistoryResponse struct {
	Items []PrintJobResponse `json:"items"`
}

type PrintJobResponse struct {
	JobID        string    `json:"job_id"`
	ProductName  string    `json:"product_name"`
	Barcode      string    `json:"barcode,omitempty"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toPrintJobResponse(j PrintJob) PrintJobResponse {
	return PrintJobResponse{
		JobID:        j.JobID,
		ProductName:  j.ProductName,
		Barcode:      j.Barcode,
		Success:      j.Success,
		ErrorMessage: j.ErrorMessage,
		CreatedAt:    j.CreatedAt,
	}
}

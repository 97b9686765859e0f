package api

import (
	"net/http"

	"github.com/caresync/hospital-api/internal/directory"
)

func listDoctorsHandler(repo directory.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctors, err := repo.ListDoctors(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, DoctorListResponse{
			Success: true,
			Doctors: doctors,
		})
	}
}

package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/apperr"
	"github.com/cleared-dev/ledgerbook/internal/importer"
)

const maxUploadBytes = 32 << 20

func (s *Server) importFile(c *gin.Context) {
	company := companyFrom(c)
	kind, err := importer.ParseKind(c.Param("kind"))
	if err != nil {
		s.writeError(c, apperr.NotFound("import", c.Param("kind")))
		return
	}
	action := "import." + string(kind)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			s.fail(c, company.ID, action, apperr.MissingField("file"))
			return
		}
		s.writeError(c, errBadBody{err})
		return
	}
	f, err := fh.Open()
	if err != nil {
		s.writeError(c, fmt.Errorf("opening upload: %w", err))
		return
	}
	defer f.Close()

	tbl, err := s.parsers.ReadFile(fh.Filename, f)
	if err != nil {
		if _, ok := apperr.As(err); !ok {
			err = apperr.New(apperr.KindUnsupportedFormat, "file", "cannot read %s: %v", fh.Filename, err)
		}
		s.fail(c, company.ID, action, err)
		return
	}

	var res importer.Result
	err = s.store.Do(c.Request.Context(), func(tx *gorm.DB) error {
		var err error
		res, err = s.importer.Import(tx, kind, company.ID, tbl)
		return err
	})
	if err != nil {
		s.fail(c, company.ID, action, err)
		return
	}
	s.succeed(c, http.StatusOK, company.ID, action, res.Level(), res.Message(), gin.H{"result": res})
}

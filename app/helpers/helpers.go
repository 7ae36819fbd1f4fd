package helpers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
)

var Validate = validator.New()

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

const mysqlDuplicateEntry = 1062

// TranslateDBError maps backend constraint violations to messages a till
// operator can act on. Anything unrecognized keeps a generic message; the raw
// error stays in the server log.
func TranslateDBError(err error) string {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		msg := strings.ToLower(mysqlErr.Message)
		switch {
		case strings.Contains(msg, "barcode"):
			return "A product with this barcode already exists."
		case strings.Contains(msg, "sku"):
			return "A product with this SKU already exists."
		case strings.Contains(msg, "email"):
			return "An account with this email already exists."
		default:
			return "A record with these details already exists."
		}
	}
	return "Something went wrong saving your changes. Please try again."
}

// ValidationMessage flattens the first validator error into one readable line.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0]
		switch field.Tag() {
		case "required":
			return field.Field() + " is required."
		case "email":
			return field.Field() + " must be a valid email address."
		case "gt", "gte", "min":
			return field.Field() + " is too small."
		case "oneof":
			return field.Field() + " has an unsupported value."
		}
		return field.Field() + " is invalid."
	}
	return "Invalid request."
}

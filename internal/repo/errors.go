package repo

import "errors"

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ErrConsumptionNotFound is returned when a consumption does not exist under
// the addressed product. Addressing a consumption through a product it does
// not belong to resolves to this error, never to the record itself.
var ErrConsumptionNotFound = errors.New("consumption not found")

var ErrUserNotFound = errors.New("user not found")

// ErrDuplicatedValueUnique is returned on unique constraint violations.
var ErrDuplicatedValueUnique = errors.New("duplicated value for unique column")

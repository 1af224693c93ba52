package http

import (
	"errors"
	"math"
	"time"

	"cargo/internal/core/application/usecases/queries"
	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"
)

// ErrorResponse is the body of every non 2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type LocationBody struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type MeasureBody struct {
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
	Size   string  `json:"size"`
}

// CargoRequest is accepted by create and edit.
type CargoRequest struct {
	Description    string        `json:"description"`
	SelfLocation   *LocationBody `json:"selfLocation"`
	TargetLocation *LocationBody `json:"targetLocation"`
	Measure        *MeasureBody  `json:"measure"`
	PhoneNumber    string        `json:"phoneNumber"`
}

func (r CargoRequest) toDetails() (cargo.Details, error) {
	pickup, pickupErr := r.SelfLocation.toLocation("selfLocation")
	dropoff, dropoffErr := r.TargetLocation.toLocation("targetLocation")
	measure, measureErr := r.Measure.toMeasure()
	if err := errors.Join(pickupErr, dropoffErr, measureErr); err != nil {
		return cargo.Details{}, err
	}

	return cargo.Details{
		Description:  r.Description,
		Pickup:       pickup,
		Dropoff:      dropoff,
		Measure:      measure,
		ContactPhone: r.PhoneNumber,
	}, nil
}

func (b *LocationBody) toLocation(param string) (kernel.Location, error) {
	if b == nil {
		return kernel.Location{}, errs.NewValueIsRequiredError(param)
	}
	return kernel.NewLocation(b.Latitude, b.Longitude)
}

func (b *MeasureBody) toMeasure() (cargo.Measure, error) {
	if b == nil {
		return cargo.Measure{}, errs.NewValueIsRequiredError("measure")
	}
	size, err := cargo.ParseSizeClass(b.Size)
	if err != nil {
		return cargo.Measure{}, err
	}
	return cargo.NewMeasure(b.Weight, b.Height, size)
}

type DeliverRequest struct {
	Code string `json:"code"`
}

// RegisterRequest carries the common user fields plus the role specific one:
// vehicleType for drivers, taxId for distributors.
type RegisterRequest struct {
	Username    string `json:"username"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
	VehicleType string `json:"vehicleType"`
	TaxID       string `json:"taxId"`
}

func (r RegisterRequest) profile(role user.Role) user.Profile {
	if role == user.RoleDriver {
		return user.DriverProfile{VehicleType: r.VehicleType}
	}
	return user.DistributorProfile{TaxID: r.TaxID}
}

// UpdateProfileRequest replaces username and phone. At most one of vehicleType
// and taxId may be set; leaving both out keeps the current profile.
type UpdateProfileRequest struct {
	Username    string `json:"username"`
	PhoneNumber string `json:"phoneNumber"`
	VehicleType string `json:"vehicleType"`
	TaxID       string `json:"taxId"`
}

func (r UpdateProfileRequest) profile() (user.Profile, error) {
	switch {
	case r.VehicleType != "" && r.TaxID != "":
		return nil, errs.NewValueIsInvalidErrorWithCause("profile",
			errors.New("vehicleType and taxId cannot be set together"))
	case r.VehicleType != "":
		return user.DriverProfile{VehicleType: r.VehicleType}, nil
	case r.TaxID != "":
		return user.DistributorProfile{TaxID: r.TaxID}, nil
	default:
		return nil, nil
	}
}

type TokenResponse struct {
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type CargoResponse struct {
	ID               string       `json:"id"`
	DistributorID    string       `json:"distributorId"`
	DriverID         *string      `json:"driverId,omitempty"`
	Description      string       `json:"description"`
	SelfLocation     LocationBody `json:"selfLocation"`
	TargetLocation   LocationBody `json:"targetLocation"`
	Measure          MeasureBody  `json:"measure"`
	DistanceKm       float64      `json:"distanceKm"`
	PhoneNumber      string       `json:"phoneNumber"`
	DistPhoneNumber  string       `json:"distPhoneNumber,omitempty"`
	CargoSituation   string       `json:"cargoSituation"`
	VerificationCode *string      `json:"verificationCode,omitempty"`
	TakingTime       *time.Time   `json:"takingTime,omitempty"`
	DeliveredTime    *time.Time   `json:"deliveredTime,omitempty"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

type PageMetaResponse struct {
	CurrentPage int   `json:"currentPage"`
	TotalItems  int64 `json:"totalItems"`
	PageSize    int   `json:"pageSize"`
	IsFirst     bool  `json:"isFirst"`
	IsLast      bool  `json:"isLast"`
}

type CargoPageResponse struct {
	Data []CargoResponse  `json:"data"`
	Meta PageMetaResponse `json:"meta"`
}

func toCargoPageResponse(page queries.CargoPage) CargoPageResponse {
	data := make([]CargoResponse, len(page.Items))
	for i, view := range page.Items {
		data[i] = toCargoResponse(view)
	}

	return CargoPageResponse{
		Data: data,
		Meta: PageMetaResponse{
			CurrentPage: page.Meta.CurrentPage,
			TotalItems:  page.Meta.TotalItems,
			PageSize:    page.Meta.PageSize,
			IsFirst:     page.Meta.IsFirst,
			IsLast:      page.Meta.IsLast,
		},
	}
}

func toCargoResponse(view queries.CargoView) CargoResponse {
	var driverID *string
	if view.DriverID != nil {
		id := view.DriverID.String()
		driverID = &id
	}

	// Zero-value locations in partial views fail validation and yield 0.
	distance, _ := view.Pickup.DistanceKm(view.Dropoff)

	return CargoResponse{
		ID:            view.ID.String(),
		DistributorID: view.DistributorID.String(),
		DriverID:      driverID,
		Description:   view.Description,
		SelfLocation: LocationBody{
			Latitude:  view.Pickup.Latitude(),
			Longitude: view.Pickup.Longitude(),
		},
		TargetLocation: LocationBody{
			Latitude:  view.Dropoff.Latitude(),
			Longitude: view.Dropoff.Longitude(),
		},
		Measure: MeasureBody{
			Weight: view.Weight,
			Height: view.Height,
			Size:   string(view.Size),
		},
		DistanceKm:       math.Round(distance*100) / 100,
		PhoneNumber:      view.ContactPhone,
		DistPhoneNumber:  view.DistributorPhone,
		CargoSituation:   view.Status.String(),
		VerificationCode: view.VerificationCode,
		TakingTime:       view.TakingTime,
		DeliveredTime:    view.DeliveredTime,
		CreatedAt:        view.CreatedAt,
		UpdatedAt:        view.UpdatedAt,
	}
}

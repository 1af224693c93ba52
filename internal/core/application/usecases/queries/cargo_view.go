package queries

import (
	"context"
	"time"

	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/pgerr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CargoView is the read model of a cargo. VerificationCode is nil whenever the
// caller may not see it.
type CargoView struct {
	ID               kernel.UUID
	DistributorID    kernel.UUID
	DriverID         *kernel.UUID
	Description      string
	Pickup           kernel.Location
	Dropoff          kernel.Location
	Weight           float64
	Height           float64
	Size             cargo.SizeClass
	ContactPhone     string
	DistributorPhone string
	Status           cargo.Status
	VerificationCode *string
	TakingTime       *time.Time
	DeliveredTime    *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CargoPage is one page of cargo views plus its position in the result set.
type CargoPage struct {
	Items []CargoView
	Meta  PageMeta
}

type cargoRow struct {
	ID               uuid.UUID  `gorm:"column:id"`
	DistributorID    uuid.UUID  `gorm:"column:distributor_id"`
	DriverID         *uuid.UUID `gorm:"column:driver_id"`
	Description      string     `gorm:"column:description"`
	PickupLatitude   float64    `gorm:"column:pickup_latitude"`
	PickupLongitude  float64    `gorm:"column:pickup_longitude"`
	DropoffLatitude  float64    `gorm:"column:dropoff_latitude"`
	DropoffLongitude float64    `gorm:"column:dropoff_longitude"`
	Weight           float64    `gorm:"column:weight"`
	Height           float64    `gorm:"column:height"`
	Size             string     `gorm:"column:size"`
	ContactPhone     string     `gorm:"column:contact_phone"`
	DistributorPhone *string    `gorm:"column:distributor_phone"`
	Status           int        `gorm:"column:status"`
	VerificationCode *string    `gorm:"column:verification_code"`
	TakingTime       *time.Time `gorm:"column:taking_time"`
	DeliveredTime    *time.Time `gorm:"column:delivered_time"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

const selectCargoViews = `
	SELECT
		c.id,
		c.distributor_id,
		c.driver_id,
		c.description,
		c.pickup_latitude,
		c.pickup_longitude,
		c.dropoff_latitude,
		c.dropoff_longitude,
		c.weight,
		c.height,
		c.size,
		c.contact_phone,
		u.phone AS distributor_phone,
		c.status,
		c.verification_code,
		c.taking_time,
		c.delivered_time,
		c.created_at,
		c.updated_at
	FROM cargoes c
	LEFT JOIN users u ON u.id = c.distributor_id
`

// listCargo runs the count and the page query for one filter. where must be a
// constant SQL fragment over alias c; user input only travels in args.
func listCargo(
	ctx context.Context,
	db *gorm.DB,
	where string,
	args []any,
	pagination Pagination,
	withCode bool,
) (CargoPage, error) {
	var total int64
	if err := db.WithContext(ctx).
		Raw("SELECT count(*) FROM cargoes c WHERE "+where, args...).
		Scan(&total).Error; err != nil {
		return CargoPage{}, pgerr.Classify("count cargo", err)
	}

	var rows []cargoRow
	pageArgs := append(append([]any{}, args...), pagination.Size(), pagination.offset())
	if err := db.WithContext(ctx).
		Raw(selectCargoViews+
			" WHERE "+where+
			" ORDER BY "+pagination.orderColumn()+", c.id"+
			" LIMIT ? OFFSET ?", pageArgs...).
		Scan(&rows).Error; err != nil {
		return CargoPage{}, pgerr.Classify("list cargo", err)
	}

	items := make([]CargoView, 0, len(rows))
	for _, row := range rows {
		view, err := row.toView(withCode)
		if err != nil {
			return CargoPage{}, err
		}
		items = append(items, view)
	}

	return CargoPage{Items: items, Meta: newPageMeta(pagination, total)}, nil
}

func (r cargoRow) toView(withCode bool) (CargoView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return CargoView{}, err
	}

	distributorID, err := kernel.UUIDFromBytes(r.DistributorID[:])
	if err != nil {
		return CargoView{}, err
	}

	var driverID *kernel.UUID
	if r.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes(r.DriverID[:])
		if driverErr != nil {
			return CargoView{}, driverErr
		}
		driverID = &dID
	}

	pickup, err := kernel.NewLocation(r.PickupLatitude, r.PickupLongitude)
	if err != nil {
		return CargoView{}, err
	}

	dropoff, err := kernel.NewLocation(r.DropoffLatitude, r.DropoffLongitude)
	if err != nil {
		return CargoView{}, err
	}

	view := CargoView{
		ID:            id,
		DistributorID: distributorID,
		DriverID:      driverID,
		Description:   r.Description,
		Pickup:        pickup,
		Dropoff:       dropoff,
		Weight:        r.Weight,
		Height:        r.Height,
		Size:          cargo.SizeClass(r.Size),
		ContactPhone:  r.ContactPhone,
		Status:        cargo.Status(r.Status),
		TakingTime:    r.TakingTime,
		DeliveredTime: r.DeliveredTime,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}

	if r.DistributorPhone != nil {
		view.DistributorPhone = *r.DistributorPhone
	}
	if withCode {
		view.VerificationCode = r.VerificationCode
	}

	return view, nil
}

package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/eventora/backoffice/internal/backend"
	"github.com/eventora/backoffice/internal/cascade"
	"github.com/eventora/backoffice/internal/models"
	"github.com/eventora/backoffice/internal/session"
)

func (a *App) ListOrganizations(ctx context.Context) error {
	return a.protected(ctx, session.RoleCompany, func(ctx context.Context) error {
		orgs, err := a.client.Organizations(ctx)
		if err != nil {
			fmt.Fprintf(a.out, "Could not list organizations: %s\n", err.Error())
			return nil
		}
		if len(orgs) == 0 {
			fmt.Fprintln(a.out, "No organizations yet.")
			return nil
		}
		for _, org := range orgs {
			active := "inactive"
			if org.IsActive {
				active = "active"
			}
			fmt.Fprintf(a.out, "%d\t%s\t(city %d, district %d)\t%s\n",
				org.ID, org.Name, org.CityID, org.DistrictID, active)
		}
		return nil
	})
}

func (a *App) AddOrganization(ctx context.Context) error {
	return a.protected(ctx, session.RoleCompany, func(ctx context.Context) error {
		org, ok, err := a.promptOrganization(ctx, models.Organization{IsActive: true}, false)
		if err != nil || !ok {
			return err
		}

		created, err := a.client.CreateOrganization(ctx, org)
		if err != nil {
			fmt.Fprintf(a.out, "Could not create organization: %s\n", err.Error())
			return nil
		}
		fmt.Fprintf(a.out, "Created organization %d\n", created.ID)
		return nil
	})
}

func (a *App) EditOrganization(ctx context.Context, arg string) error {
	return a.protected(ctx, session.RoleCompany, func(ctx context.Context) error {
		id, ok := cascade.ParseID(arg)
		if !ok {
			fmt.Fprintln(a.out, "Usage: editorg <id>")
			return nil
		}

		org, err := a.client.Organization(ctx, id)
		if err != nil {
			fmt.Fprintf(a.out, "Could not load organization: %s\n", err.Error())
			return nil
		}

		updated, ok, err := a.promptOrganization(ctx, org, true)
		if err != nil || !ok {
			return err
		}

		if err := a.client.UpdateOrganization(ctx, updated); err != nil {
			fmt.Fprintf(a.out, "Could not update organization: %s\n", err.Error())
			return nil
		}
		fmt.Fprintln(a.out, "Organization updated")
		return nil
	})
}

func (a *App) DeleteOrganization(ctx context.Context, arg string) error {
	return a.protected(ctx, session.RoleCompany, func(ctx context.Context) error {
		id, ok := cascade.ParseID(arg)
		if !ok {
			fmt.Fprintln(a.out, "Usage: delorg <id>")
			return nil
		}

		if err := a.client.DeleteOrganization(ctx, id); err != nil {
			fmt.Fprintf(a.out, "Could not delete organization: %s\n", err.Error())
			return nil
		}
		fmt.Fprintln(a.out, "Organization deleted")
		return nil
	})
}

// promptOrganization walks the user through the organization form. City and
// district are driven by a cascade controller so the district list always
// belongs to the chosen city. Returns ok=false when the form was abandoned.
func (a *App) promptOrganization(ctx context.Context, org models.Organization, editing bool) (models.Organization, bool, error) {
	name, err := GetOptionalText(a.reader, "Name", org.Name, a.out)
	if err != nil {
		return org, false, err
	}
	org.Name = name

	description, err := GetOptionalText(a.reader, "Description", org.Description, a.out)
	if err != nil {
		return org, false, err
	}
	org.Description = description

	ctrl := cascade.NewController(backend.NewDistrictFetcher(a.client), a.log)
	if editing && org.CityID > 0 {
		ctrl.Prepopulate(ctx, org.CityID, org.DistrictID)
		snap := a.awaitOptions(ctrl)
		if snap.StaleRef {
			fmt.Fprintln(a.out, "Saved district is no longer available for this city, please pick a new one.")
		}
	}

	cityID, districtID, ok, err := a.promptLocation(ctx, ctrl, org.CityID)
	if err != nil || !ok {
		return org, ok, err
	}
	org.CityID = cityID
	org.DistrictID = districtID

	address, err := GetOptionalText(a.reader, "Address", org.Address, a.out)
	if err != nil {
		return org, false, err
	}
	org.Address = address

	capacityText, err := GetOptionalText(a.reader, "Capacity", strconv.Itoa(org.Capacity), a.out)
	if err != nil {
		return org, false, err
	}
	if capacity, convErr := strconv.Atoi(capacityText); convErr == nil {
		org.Capacity = capacity
	}

	priceText, err := GetOptionalText(a.reader, "Price", strconv.FormatInt(org.Price, 10), a.out)
	if err != nil {
		return org, false, err
	}
	if price, convErr := strconv.ParseInt(priceText, 10, 64); convErr == nil {
		org.Price = price
	}

	return org, true, nil
}

// promptLocation asks for the city, lets the cascade controller fetch the
// matching districts, and then asks for the district. The district input is
// only offered once loading has finished, which is the renderer's side of
// the controller contract.
func (a *App) promptLocation(ctx context.Context, ctrl *cascade.Controller, currentCity int64) (int64, int64, bool, error) {
	cities, err := a.client.Cities(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load cities: %s\n", err.Error())
		return 0, 0, false, nil
	}
	for _, city := range cities {
		fmt.Fprintf(a.out, "%d\t%s\n", city.ID, city.Name)
	}

	cityText, err := GetOptionalText(a.reader, "City id", strconv.FormatInt(currentCity, 10), a.out)
	if err != nil {
		return 0, 0, false, err
	}

	snap := ctrl.Snapshot()
	if newCity, ok := cascade.ParseID(cityText); !ok {
		fmt.Fprintln(a.out, "A city is required.")
		return 0, 0, false, nil
	} else if snap.ParentID == nil || *snap.ParentID != newCity {
		ctrl.SetParent(ctx, newCity)
		snap = a.awaitOptions(ctrl)
	}

	if snap.FetchError != "" {
		fmt.Fprintf(a.out, "Could not load districts: %s (re-enter the city to retry)\n", snap.FetchError)
	}
	if len(snap.Options) == 0 {
		fmt.Fprintln(a.out, "No districts available for this city.")
		return *snap.ParentID, 0, true, nil
	}

	for _, option := range snap.Options {
		fmt.Fprintf(a.out, "%d\t%s\n", option.ID, option.Name)
	}

	current := ""
	if snap.ChildID != nil {
		current = strconv.FormatInt(*snap.ChildID, 10)
	}
	districtText, err := GetOptionalText(a.reader, "District id", current, a.out)
	if err != nil {
		return 0, 0, false, err
	}
	ctrl.SetChild(districtText)

	snap = ctrl.Snapshot()
	districtID := int64(0)
	if snap.ChildID != nil {
		districtID = *snap.ChildID
	}
	return *snap.ParentID, districtID, true, nil
}

// awaitOptions blocks until the controller finishes its in-flight fetch.
// The CLI has no render loop, so polling stands in for repainting.
func (a *App) awaitOptions(ctrl *cascade.Controller) cascade.Snapshot {
	deadline := time.Now().Add(a.config.HTTPTimeout + time.Second)
	for {
		snap := ctrl.Snapshot()
		if !snap.Loading || time.Now().After(deadline) {
			return snap
		}
		time.Sleep(20 * time.Millisecond)
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/eventora/backoffice/internal/backend"
	"github.com/eventora/backoffice/internal/cascade"
	"github.com/eventora/backoffice/internal/session"
)

// EditCompany shows the company profile and walks through editing it.
// The city/district pair is driven by the same cascade controller as the
// organization form.
func (a *App) EditCompany(ctx context.Context) error {
	return a.protected(ctx, session.RoleCompany, func(ctx context.Context) error {
		company, err := a.client.Company(ctx)
		if err != nil {
			fmt.Fprintf(a.out, "Could not load company profile: %s\n", err.Error())
			return nil
		}

		fmt.Fprintf(a.out, "%s <%s> (city %d, district %d)\n",
			company.Name, company.Email, company.CityID, company.DistrictID)

		name, err := GetOptionalText(a.reader, "Company name", company.Name, a.out)
		if err != nil {
			return err
		}
		company.Name = name

		phone, err := GetOptionalText(a.reader, "Phone", company.Phone, a.out)
		if err != nil {
			return err
		}
		company.Phone = phone

		ctrl := cascade.NewController(backend.NewDistrictFetcher(a.client), a.log)
		if company.CityID > 0 {
			ctrl.Prepopulate(ctx, company.CityID, company.DistrictID)
			snap := a.awaitOptions(ctrl)
			if snap.StaleRef {
				fmt.Fprintln(a.out, "Saved district is no longer available for this city, please pick a new one.")
			}
		}

		cityID, districtID, ok, err := a.promptLocation(ctx, ctrl, company.CityID)
		if err != nil || !ok {
			return err
		}
		company.CityID = cityID
		company.DistrictID = districtID

		address, err := GetOptionalText(a.reader, "Address", company.Address, a.out)
		if err != nil {
			return err
		}
		company.Address = address

		about, err := GetOptionalText(a.reader, "About", company.About, a.out)
		if err != nil {
			return err
		}
		company.About = about

		if err := a.client.UpdateCompany(ctx, company); err != nil {
			fmt.Fprintf(a.out, "Could not update company profile: %s\n", err.Error())
			return nil
		}
		fmt.Fprintln(a.out, "Company profile updated")
		return nil
	})
}

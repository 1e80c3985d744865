package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/pkg/errors"
	"github.com/cairogo-gateway/internal/pkg/validator"
	"github.com/cairogo-gateway/internal/usecase/dto"
)

// stops per saved trip day, in slot order
var daySlots = []domain.SlotType{domain.SlotMorning, domain.SlotAfternoon, domain.SlotEvening}

const maxTripDays = 14

func (c *CLI) flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(c.out)
	return fs
}

func (c *CLI) handleLogin(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: login <email> <password>")
	}
	req := dto.LoginRequest{Email: args[0], Password: args[1]}
	if err := validator.Validate(&req); err != nil {
		return err
	}

	res, err := c.deps.Auth.Login(ctx, c.sess, req)
	if err != nil {
		return err
	}
	c.printf("Welcome back, %s.\n", displayName(res.User))
	return nil
}

func (c *CLI) handleRegister(ctx context.Context, args []string) error {
	fs := c.flags("register")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email")
	age := fs.Int("age", 0, "age")
	address := fs.String("address", "", "address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := dto.RegisterRequest{
		FullName:        *name,
		Email:           *email,
		Age:             *age,
		Address:         *address,
		Password:        *password,
		ConfirmPassword: *password,
	}
	if err := validator.Validate(&req); err != nil {
		return err
	}

	res, err := c.deps.Auth.Register(ctx, c.sess, req)
	if err != nil {
		return err
	}
	c.printf("Account created. Welcome, %s.\n", displayName(res.User))
	return nil
}

func (c *CLI) handleLogout(ctx context.Context) error {
	if err := c.deps.Auth.Logout(ctx, c.sess); err != nil {
		return err
	}
	c.printf("Signed out. Favorites are kept on this device now.\n")
	return nil
}

func (c *CLI) handleWhoami(ctx context.Context) error {
	u, err := c.deps.Profile.Me(ctx, c.sess)
	if err != nil {
		if stderrors.Is(err, errors.ErrUnauthorized) {
			c.printf("Not signed in.\n")
			return nil
		}
		return err
	}
	c.printf("%s <%s>\n", displayName(u), u.Email)
	if u.Address != "" {
		c.printf("  address: %s\n", u.Address)
	}
	if u.Age > 0 {
		c.printf("  age:     %d\n", u.Age)
	}
	if !u.CreatedAt.IsZero() {
		c.printf("  joined:  %s\n", u.CreatedAt.Format("2 Jan 2006"))
	}
	return nil
}

func (c *CLI) handleBrowse(ctx context.Context, args []string) error {
	fs := c.flags("browse")
	tiers := fs.StringSlice("tier", nil, "cost tiers: Low,Medium,High")
	moods := fs.StringSlice("mood", nil, "moods")
	types := fs.StringSlice("type", nil, "categories or activity types")
	setting := fs.StringSlice("io", nil, "Indoor,Outdoor")
	minRating := fs.Int("min-rating", 0, "minimum rating 0-5")
	sort := fs.String("sort", "", "relevance, rating_desc, rating_asc, price_desc, price_asc, distance_asc")
	page := fs.Int("page", 1, "page number")
	pageSize := fs.Int("page-size", 0, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := dto.BrowseRequest{
		CostTiers:     *tiers,
		Moods:         *moods,
		ActivityTypes: *types,
		IndoorOutdoor: *setting,
		MinRating:     *minRating,
		Search:        strings.Join(fs.Args(), " "),
		Sort:          *sort,
		Page:          *page,
		PageSize:      *pageSize,
	}
	if err := validator.Validate(&req); err != nil {
		return err
	}

	res, err := c.deps.Catalog.Browse(ctx, c.sess, req)
	if err != nil {
		return err
	}
	if res.Total == 0 {
		c.printf("No attractions match.\n")
		return nil
	}
	for _, a := range res.Items {
		c.printAttractionRow(a)
	}
	c.printf("Page %d/%d, %d of %d attractions\n", res.Page, res.TotalPages, res.Total, res.CatalogSize)
	return nil
}

func (c *CLI) handleShow(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show <id>")
	}
	a, err := c.deps.Catalog.Get(ctx, c.sess, args[0])
	if err != nil {
		return err
	}

	c.printf("#%d %s\n", a.ID, a.Title)
	c.printf("  %s  %s  %s\n", stars(a.Stars), a.Category, price(a.Attraction))
	c.printf("  %s\n", a.Description)
	if a.LongDescription != nil {
		c.printf("  %s\n", *a.LongDescription)
	}
	if len(a.Moods) > 0 {
		c.printf("  moods: %s\n", strings.Join(a.Moods, ", "))
	}
	if a.BestTimeOfDay != nil {
		c.printf("  best time: %s\n", *a.BestTimeOfDay)
	}
	if a.Website != nil {
		c.printf("  %s\n", *a.Website)
	}
	if on, err := c.deps.Favorites.IsFavorite(ctx, c.sess, args[0]); err == nil && on {
		c.printf("  in favorites\n")
	}
	return nil
}

func (c *CLI) handleRecommend(ctx context.Context, args []string) error {
	fs := c.flags("recommend")
	refresh := fs.Bool("refresh", false, "ask the recommendation service again")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := c.deps.Recommendations.Generate(ctx, c.sess, *refresh)
	if err != nil {
		return err
	}
	if len(res.Items) == 0 {
		c.printf("No recommendations yet. Take the quiz first.\n")
		return nil
	}
	for _, a := range res.Items {
		c.printAttractionRow(a)
	}
	if len(res.Unmatched) > 0 {
		c.printf("(%d suggestions are not in the catalog)\n", len(res.Unmatched))
	}
	return nil
}

func (c *CLI) handleQuiz(ctx context.Context, args []string) error {
	if len(args) == 0 {
		p, err := c.deps.Preferences.Get(ctx, c.sess)
		if err != nil {
			return err
		}
		if p == nil {
			c.printf("No preferences yet. Run: quiz --vibe <vibe> --days <n> [--activities a,b] [--weather w]\n")
			return nil
		}
		c.printPreferences(p)
		return nil
	}

	fs := c.flags("quiz")
	vibe := fs.String("vibe", "", "travel vibe")
	activities := fs.StringSlice("activities", nil, "activity type ids")
	weather := fs.String("weather", "", "weather preference")
	days := fs.Int("days", 0, "trip days 1-14")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := dto.PreferenceRequest{
		TravelVibe:      *vibe,
		ActivityTypeIDs: *activities,
		WeatherPref:     *weather,
		TripDays:        *days,
	}
	if err := validator.Validate(&req); err != nil {
		return err
	}

	p, err := c.deps.Preferences.Submit(ctx, c.sess, req)
	if err != nil {
		return err
	}
	c.printf("Preferences saved.\n")
	c.printPreferences(p)
	return nil
}

func (c *CLI) handleTrips(ctx context.Context, args []string) error {
	sub := ""
	if len(args) > 0 {
		sub = strings.ToLower(args[0])
	}

	switch sub {
	case "", "ls":
		trips, err := c.deps.Trips.List(ctx, c.sess)
		if err != nil {
			return err
		}
		if len(trips) == 0 {
			c.printf("No saved trips.\n")
			return nil
		}
		for _, t := range trips {
			c.printf("%s  %-32s %d days\n", t.TripPlanID, t.Title, t.TripDays)
		}
		return nil

	case "gen":
		res, err := c.deps.Trips.Generate(ctx, c.sess)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.plans = res.Plans
		c.mu.Unlock()
		for _, p := range res.Plans {
			c.printf("Plan %d (%.1f km)\n", p.Number, p.RouteKm)
			for i, a := range p.Attractions {
				c.printf("  %d. %s\n", i+1, a.Title)
			}
		}
		c.printf("Save one with: trips save <plan> \"<title>\"\n")
		return nil

	case "save":
		if len(args) != 3 {
			return fmt.Errorf("usage: trips save <plan> <title>")
		}
		return c.saveTrip(ctx, args[1], args[2])

	case "show":
		if len(args) != 2 {
			return fmt.Errorf("usage: trips show <id>")
		}
		t, err := c.deps.Trips.Get(ctx, c.sess, args[1])
		if err != nil {
			return err
		}
		c.printf("%s (%d days)\n", t.Title, t.TripDays)
		for _, d := range t.Days {
			c.printf("  Day %d\n", d.DayNumber)
			for _, s := range d.TripSlots {
				c.printf("    %-9s %s\n", s.SlotType, c.placeTitle(ctx, s.PlaceID))
			}
		}
		return nil

	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: trips rm <id>")
		}
		if err := c.deps.Trips.Delete(ctx, c.sess, args[1]); err != nil {
			return err
		}
		c.printf("Trip deleted.\n")
		return nil

	default:
		return fmt.Errorf("unknown trips command: %s", args[0])
	}
}

func (c *CLI) saveTrip(ctx context.Context, planRef, title string) error {
	n, err := strconv.Atoi(planRef)
	if err != nil {
		return fmt.Errorf("plan must be a number: %s", planRef)
	}

	c.mu.Lock()
	plans := c.plans
	c.mu.Unlock()

	var plan *dto.GeneratedPlan
	for i := range plans {
		if plans[i].Number == n {
			plan = &plans[i]
			break
		}
	}
	if plan == nil {
		return fmt.Errorf("no generated plan %d, run: trips gen", n)
	}

	req := TripFromPlan(*plan, title)
	if err := validator.Validate(&req); err != nil {
		return err
	}
	t, err := c.deps.Trips.Create(ctx, c.sess, req)
	if err != nil {
		return err
	}
	c.printf("Saved trip %s (%d days).\n", t.TripPlanID, len(req.Days))
	return nil
}

// TripFromPlan lays the plan's stops out three per day in visiting order.
func TripFromPlan(plan dto.GeneratedPlan, title string) dto.CreateTripRequest {
	req := dto.CreateTripRequest{Title: title}
	for i, a := range plan.Attractions {
		day := i / len(daySlots)
		if day >= maxTripDays {
			break
		}
		if day == len(req.Days) {
			req.Days = append(req.Days, dto.CreateTripDayRequest{})
		}
		req.Days[day].Slots = append(req.Days[day].Slots, dto.CreateTripSlotRequest{
			SlotType: daySlots[i%len(daySlots)],
			PlaceID:  a.PlaceID,
		})
	}
	return req
}

func (c *CLI) handleFavorites(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"ls"}
	}

	switch strings.ToLower(args[0]) {
	case "ls":
		fs := c.flags("fav ls")
		category := fs.String("category", "", "user category")
		sort := fs.String("sort", dto.FavoritesNewest, "newest, oldest, title")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		q := dto.FavoritesQuery{Category: *category, Sort: *sort}
		if err := validator.Validate(&q); err != nil {
			return err
		}

		res, err := c.deps.Favorites.List(ctx, c.sess, q)
		if err != nil {
			return err
		}
		if res.Total == 0 {
			c.printf("No favorites yet.\n")
			return nil
		}
		for _, v := range res.Items {
			title := "(no longer in the catalog)"
			if v.Attraction != nil {
				title = fmt.Sprintf("#%d %s", v.Attraction.ID, v.Attraction.Title)
			}
			category := ""
			if v.Favorite.UserCategory != nil {
				category = "[" + *v.Favorite.UserCategory + "]"
			}
			c.printf("%-40s %s\n", title, category)
		}
		if len(res.Categories) > 0 {
			c.printf("Categories: %s\n", strings.Join(res.Categories, ", "))
		}
		return nil

	case "add":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("usage: fav add <id> [category]")
		}
		var category *string
		if len(args) == 3 {
			category = &args[2]
		}
		if err := c.deps.Favorites.Add(ctx, c.sess, args[1], category); err != nil {
			return err
		}
		c.printf("Added to favorites.\n")
		return nil

	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: fav rm <id>")
		}
		if err := c.deps.Favorites.Remove(ctx, c.sess, args[1]); err != nil {
			return err
		}
		c.printf("Removed from favorites.\n")
		return nil

	case "toggle":
		if len(args) != 2 {
			return fmt.Errorf("usage: fav toggle <id>")
		}
		res, err := c.deps.Favorites.Toggle(ctx, c.sess, args[1])
		if err != nil {
			return err
		}
		if res.IsFavorite {
			c.printf("Added to favorites.\n")
		} else {
			c.printf("Removed from favorites.\n")
		}
		return nil

	case "cat":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("usage: fav cat <id> [category]")
		}
		var category *string
		if len(args) == 3 && args[2] != "" {
			category = &args[2]
		}
		if err := c.deps.Favorites.UpdateCategory(ctx, c.sess, args[1], category); err != nil {
			return err
		}
		c.printf("Category updated.\n")
		return nil

	default:
		return fmt.Errorf("unknown fav command: %s", args[0])
	}
}

func (c *CLI) handleDark(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.printf("Dark mode is %s.\n", onOff(c.deps.Profile.DarkMode(c.sess)))
		return nil
	}

	var on bool
	switch strings.ToLower(args[0]) {
	case "on":
		on = true
	case "off":
		on = false
	default:
		return fmt.Errorf("usage: dark [on|off]")
	}
	if err := c.deps.Profile.SetDarkMode(ctx, c.sess, on); err != nil {
		return err
	}
	c.printf("Dark mode is %s.\n", onOff(on))
	return nil
}

func (c *CLI) printAttractionRow(a dto.Attraction) {
	c.printf("%3d  %-32s %s  %-6s %s\n", a.ID, truncate(a.Title, 32), stars(a.Stars), a.Level, a.Category)
}

func (c *CLI) printPreferences(p *domain.PreferenceProfile) {
	c.printf("  vibe:    %s\n", p.TravelVibe)
	c.printf("  days:    %d\n", p.TripDays)
	if p.WeatherPref != "" {
		c.printf("  weather: %s\n", p.WeatherPref)
	}
	if len(p.ActivityTypes) > 0 {
		names := make([]string, 0, len(p.ActivityTypes))
		for _, t := range p.ActivityTypes {
			names = append(names, t.Name)
		}
		c.printf("  likes:   %s\n", strings.Join(names, ", "))
	}
}

func (c *CLI) placeTitle(ctx context.Context, placeID string) string {
	a, err := c.deps.Catalog.Find(ctx, c.sess, placeID)
	if err != nil {
		return placeID
	}
	return a.Title
}

func displayName(u *domain.User) string {
	if u == nil {
		return "traveller"
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

func stars(n int) string {
	return strings.Repeat("*", n) + strings.Repeat(".", 5-n)
}

func price(a domain.Attraction) string {
	if a.Price == nil {
		return a.Level
	}
	return fmt.Sprintf("%s (~%d EGP)", a.Level, *a.Price)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}

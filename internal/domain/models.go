package domain

import "strings"

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Equal сравнивает роли без учета регистра.
func (r Role) Equal(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

// Denominations допустимые номиналы монет для пополнения депозита и выдачи сдачи.
var Denominations = []int{5, 10, 20, 50, 100}

type User struct {
	ID       string
	Username string
	Password string
	Deposit  int
	Roles    []Role
}

// HasRole проверяет наличие роли у юзера. Сравнение регистронезависимое, роли не иерархичны.
func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r.Equal(role) {
			return true
		}
	}
	return false
}

// EntityID и EntityName реализуют storage.Entity. Именем юзера выступает его юзернейм.
func (u User) EntityID() string   { return u.ID }
func (u User) EntityName() string { return u.Username }

type Product struct {
	ID              string
	Name            string
	Cost            int
	AmountAvailable int
	SellerID        string
}

func (p Product) EntityID() string   { return p.ID }
func (p Product) EntityName() string { return p.Name }

// Coin стопка монет одного номинала, выдаваемая автоматом в качестве сдачи.
type Coin struct {
	Denomination int
	Count        int
}

// Purchase результат успешной покупки. Не персистится, возвращается вызывающей стороне.
type Purchase struct {
	Product          Product
	TotalAmountSpent int
	Change           []Coin
}

package component

import "github.com/milk9111/jackrabbit/movement"

type Player struct {
	Controller   *movement.Controller
	Subscription *movement.Subscription
}

var PlayerComponent = NewComponent[Player]()

package session

// NavigatorFunc adapts a plain function to domain.Navigator
type NavigatorFunc func(route string)

// Navigate calls f(route)
func (f NavigatorFunc) Navigate(route string) {
	if f != nil {
		f(route)
	}
}

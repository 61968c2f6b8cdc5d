package shell

import (
	"embed"
	"errors"
)

//go:embed helptext/*.txt
var helptext embed.FS

func usage(mode string) (string, error) {
	dat, err := helptext.ReadFile("helptext/usage-" + mode + ".txt")
	if err != nil {
		return "", err
	}
	return string(dat), nil
}

func usageTopic(topic string) (string, error) {
	dat, err := helptext.ReadFile("helptext/" + topic + ".txt")
	if err != nil {
		return "", errors.New("there is no help text for the topic " + topic)
	}
	return string(dat), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	var txt string
	var err error
	if len(cmd.args) == 0 {
		txt, err = usage("standard")
	} else {
		txt, err = usageTopic(cmd.args[0])
	}
	if err != nil {
		return nil, err
	}
	return msg(txt), nil
}

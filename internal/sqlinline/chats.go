package sqlinline

const QSelectChatByUser = `--sql 59409b40-dbba-4b47-ab8d-11e376cec4cb
select id, messages
from chats
where user_id = $1::uuid
limit 1;
`

const QUpsertChat = `--sql f5c23b47-d507-4154-a776-5dff3baa5bc4
insert into chats (user_id, messages)
values ($1::uuid, $2)
on conflict (user_id) do update set
    messages = excluded.messages,
    updated_at = now()
returning id;
`
